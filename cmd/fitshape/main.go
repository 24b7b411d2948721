// Package main fits the gaze mapping shape to hand-annotated pitch targets
// and writes a config with the fitted values.
//
// Usage: go run ./cmd/fitshape -targets targets.csv -limit 50 -out fitted.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/puppet/config"
	"github.com/pthm-cable/puppet/gaze"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	targetsPath := flag.String("targets", "", "CSV of x,y,width,height,pitch targets")
	limit := flag.Float64("limit", 0, "Joint limit in degrees (0 = first configured joint)")
	outPath := flag.String("out", "", "Write the fitted config here (empty = print only)")
	flag.Parse()

	if *targetsPath == "" {
		log.Fatal("--targets is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	f, err := os.Open(*targetsPath)
	if err != nil {
		log.Fatalf("failed to open targets: %v", err)
	}
	var targets []gaze.Target
	if err := gocsv.UnmarshalFile(f, &targets); err != nil {
		f.Close()
		log.Fatalf("failed to parse targets: %v", err)
	}
	f.Close()

	limitDeg := float32(*limit)
	if limitDeg == 0 && len(cfg.Joints) > 0 {
		limitDeg = cfg.Joints[0].Limit
	}

	start := gaze.Shape{
		VerticalSplit: cfg.Gaze.VerticalSplit,
		UpFactor:      cfg.Gaze.UpFactor,
		DownDivisor:   cfg.Gaze.DownDivisor,
	}

	fmt.Printf("Fitting %d targets, limit=%.1f, start=%+v\n", len(targets), limitDeg, start)
	began := time.Now()
	fitted, rms, err := gaze.FitShape(targets, limitDeg, start)
	if err != nil {
		if fitted == start {
			log.Fatalf("fit failed: %v", err)
		}
		log.Printf("warning: %v (using best shape found)", err)
	}
	fmt.Printf("Fit complete in %s, rms error %.3f deg\n", time.Since(began).Round(time.Millisecond), rms)

	fmt.Println("\nFitted parameters:")
	fmt.Printf("  vertical_split: %.3f\n", fitted.VerticalSplit)
	fmt.Printf("  up_factor: %.3f\n", fitted.UpFactor)
	fmt.Printf("  down_divisor: %.3f\n", fitted.DownDivisor)

	if *outPath == "" {
		return
	}

	cfg.Gaze.VerticalSplit = fitted.VerticalSplit
	cfg.Gaze.UpFactor = fitted.UpFactor
	cfg.Gaze.DownDivisor = fitted.DownDivisor
	if err := cfg.WriteYAML(*outPath); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}
	fmt.Printf("\nFitted config saved to: %s\n", *outPath)
}
