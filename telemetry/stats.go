package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SelectionStats counts how often each gesture clip was picked and tests the
// counts against a uniform distribution over the pool.
type SelectionStats struct {
	pool   []string
	counts map[string]int
	total  int
	delays []float64 // Blend-back delays in seconds
}

// NewSelectionStats creates stats over the given clip pool.
func NewSelectionStats(pool []string) *SelectionStats {
	s := &SelectionStats{
		pool:   append([]string(nil), pool...),
		counts: make(map[string]int, len(pool)),
	}
	for _, name := range pool {
		s.counts[name] = 0
	}
	return s
}

// Record counts one selection and its blend-back delay.
// Clips outside the pool are added to it.
func (s *SelectionStats) Record(clip string, delaySec float64) {
	if _, ok := s.counts[clip]; !ok {
		s.pool = append(s.pool, clip)
	}
	s.counts[clip]++
	s.total++
	s.delays = append(s.delays, delaySec)
}

// Total returns the number of recorded selections.
func (s *SelectionStats) Total() int { return s.total }

// Count returns how often clip was selected.
func (s *SelectionStats) Count(clip string) int { return s.counts[clip] }

// Frequencies returns the observed share of each pool clip, in pool order.
func (s *SelectionStats) Frequencies() []float64 {
	out := make([]float64, len(s.pool))
	if s.total == 0 {
		return out
	}
	for i, name := range s.pool {
		out[i] = float64(s.counts[name]) / float64(s.total)
	}
	return out
}

// ChiSquare returns Pearson's statistic against a uniform expectation and
// its p-value. With fewer than two clips or no selections it returns (0, 1).
func (s *SelectionStats) ChiSquare() (chi2, p float64) {
	k := len(s.pool)
	if k < 2 || s.total == 0 {
		return 0, 1
	}

	obs := make([]float64, k)
	exp := make([]float64, k)
	want := float64(s.total) / float64(k)
	for i, name := range s.pool {
		obs[i] = float64(s.counts[name])
		exp[i] = want
	}

	chi2 = stat.ChiSquare(obs, exp)
	p = distuv.ChiSquared{K: float64(k - 1)}.Survival(chi2)
	return chi2, p
}

// DelayStats returns the mean and standard deviation of recorded blend-back delays.
func (s *SelectionStats) DelayStats() (mean, std float64) {
	switch len(s.delays) {
	case 0:
		return 0, 0
	case 1:
		return s.delays[0], 0
	}
	return stat.MeanStdDev(s.delays, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s *SelectionStats) LogValue() slog.Value {
	chi2, p := s.ChiSquare()
	mean, std := s.DelayStats()

	names := append([]string(nil), s.pool...)
	sort.Strings(names)
	counts := make([]slog.Attr, 0, len(names))
	for _, name := range names {
		counts = append(counts, slog.Int(name, s.counts[name]))
	}

	return slog.GroupValue(
		slog.Int("cycles", s.total),
		slog.Float64("chi2", chi2),
		slog.Float64("p_uniform", p),
		slog.Float64("delay_mean", mean),
		slog.Float64("delay_std", std),
		slog.Attr{Key: "counts", Value: slog.GroupValue(counts...)},
	)
}
