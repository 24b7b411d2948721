package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/puppet/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	cycleFile *os.File
	gazeFile  *os.File
	perfFile  *os.File

	// Track if headers have been written
	cycleHeaderWritten bool
	gazeHeaderWritten  bool
	perfHeaderWritten  bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "cycles.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating cycles.csv: %w", err)
	}
	om.cycleFile = f

	f, err = os.Create(filepath.Join(dir, "gaze.csv"))
	if err != nil {
		om.cycleFile.Close()
		return nil, fmt.Errorf("creating gaze.csv: %w", err)
	}
	om.gazeFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.cycleFile.Close()
		om.gazeFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteCycle appends a gesture cycle to cycles.csv.
func (om *OutputManager) WriteCycle(rec CycleRecord) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.cycleFile, []CycleRecord{rec}, &om.cycleHeaderWritten); err != nil {
		return fmt.Errorf("writing cycle: %w", err)
	}
	return nil
}

// WriteGaze appends joint orientation samples to gaze.csv.
func (om *OutputManager) WriteGaze(recs []GazeRecord) error {
	if om == nil || len(recs) == 0 {
		return nil
	}
	if err := writeRows(om.gazeFile, recs, &om.gazeHeaderWritten); err != nil {
		return fmt.Errorf("writing gaze: %w", err)
	}
	return nil
}

// WritePerf appends a performance window to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.perfFile, []PerfStatsCSV{stats.ToCSV(frame)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// writeRows marshals rows, emitting the header only on the first call.
func writeRows(f *os.File, rows any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(rows, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.cycleFile, om.gazeFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
