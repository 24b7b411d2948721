package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/puppet/config"
)

func TestNewOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager and no error, got %v, %v", om, err)
	}
	// nil manager is a no-op
	if err := om.WriteCycle(CycleRecord{Seq: 1}); err != nil {
		t.Errorf("nil WriteCycle: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty dir, got %q", om.Dir())
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		rec := CycleRecord{Seq: i, Clip: "wave", Duration: 2.6, DelayMS: 2100, Pointer: "mouse"}
		if err := om.WriteCycle(rec); err != nil {
			t.Fatalf("writing cycle %d: %v", i, err)
		}
	}
	gaze := []GazeRecord{
		{Frame: 6, Joint: "neck", Yaw: -50, Pitch: -25},
		{Frame: 6, Joint: "waist", Yaw: -30, Pitch: -15},
	}
	if err := om.WriteGaze(gaze); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteGaze(nil); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cycles.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "seq,started_at,clip") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "seq,") != 1 {
		t.Errorf("header written more than once:\n%s", data)
	}

	data, err = os.ReadFile(filepath.Join(dir, "gaze.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header + 2 gaze rows, got %d", len(lines))
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("snapshot does not reload: %v", err)
	}
}
