package telemetry

import (
	"math"
	"math/rand"
	"testing"
)

func TestSelectionStatsEmpty(t *testing.T) {
	s := NewSelectionStats([]string{"wave", "bow"})

	chi2, p := s.ChiSquare()
	if chi2 != 0 || p != 1 {
		t.Errorf("expected (0, 1) with no selections, got (%v, %v)", chi2, p)
	}
	for _, f := range s.Frequencies() {
		if f != 0 {
			t.Errorf("expected zero frequency, got %v", f)
		}
	}
	if mean, std := s.DelayStats(); mean != 0 || std != 0 {
		t.Errorf("expected zero delay stats, got %v/%v", mean, std)
	}
}

func TestSelectionStatsBalanced(t *testing.T) {
	pool := []string{"wave", "bow", "shrug", "stretch"}
	s := NewSelectionStats(pool)
	for i := 0; i < 40; i++ {
		s.Record(pool[i%len(pool)], 2.0)
	}

	chi2, p := s.ChiSquare()
	if chi2 != 0 {
		t.Errorf("expected chi2 0 for equal counts, got %v", chi2)
	}
	if math.Abs(p-1) > 1e-9 {
		t.Errorf("expected p 1 for equal counts, got %v", p)
	}
	for i, f := range s.Frequencies() {
		if f != 0.25 {
			t.Errorf("%s: expected frequency 0.25, got %v", pool[i], f)
		}
	}
}

func TestSelectionStatsSkewed(t *testing.T) {
	s := NewSelectionStats([]string{"wave", "bow", "shrug", "stretch"})
	for i := 0; i < 100; i++ {
		s.Record("wave", 2.0)
	}

	// expected 25 each: 75²/25 + 3·25 = 300
	chi2, p := s.ChiSquare()
	if math.Abs(chi2-300) > 1e-9 {
		t.Errorf("expected chi2 300, got %v", chi2)
	}
	if p > 1e-6 {
		t.Errorf("expected vanishing p-value, got %v", p)
	}
	if s.Count("wave") != 100 || s.Count("bow") != 0 {
		t.Errorf("unexpected counts wave=%d bow=%d", s.Count("wave"), s.Count("bow"))
	}
}

func TestSelectionStatsUniformSampling(t *testing.T) {
	pool := []string{"wave", "bow", "shrug", "stretch"}
	s := NewSelectionStats(pool)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 8000; i++ {
		s.Record(pool[rng.Intn(len(pool))], 1)
	}

	if _, p := s.ChiSquare(); p < 0.001 {
		t.Errorf("uniform sampling rejected with p=%v", p)
	}
}

func TestSelectionStatsUnknownClipJoinsPool(t *testing.T) {
	s := NewSelectionStats([]string{"wave"})
	s.Record("bow", 1)

	if len(s.Frequencies()) != 2 {
		t.Fatalf("expected pool of 2, got %d", len(s.Frequencies()))
	}
	if s.Total() != 1 || s.Count("bow") != 1 {
		t.Errorf("expected one bow selection, got total=%d bow=%d", s.Total(), s.Count("bow"))
	}
}

func TestSelectionStatsDelays(t *testing.T) {
	s := NewSelectionStats([]string{"wave", "bow"})
	s.Record("wave", 2.0)
	if mean, std := s.DelayStats(); mean != 2.0 || std != 0 {
		t.Errorf("single delay: expected 2/0, got %v/%v", mean, std)
	}

	s.Record("bow", 4.0)
	mean, std := s.DelayStats()
	if math.Abs(mean-3.0) > 1e-9 {
		t.Errorf("expected mean delay 3, got %v", mean)
	}
	// unbiased sample std of {2, 4}
	if math.Abs(std-math.Sqrt2) > 1e-9 {
		t.Errorf("expected std sqrt(2), got %v", std)
	}
}
