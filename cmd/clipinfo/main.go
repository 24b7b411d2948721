// Clip listing tool - prints the animation clips baked into a model file.
//
// Usage: go run ./cmd/clipinfo -model assets/character.glb [-csv] [-bones]
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/puppet/config"
	"github.com/pthm-cable/puppet/gesture"
	"github.com/pthm-cable/puppet/renderer"
)

// clipRow is one clip of the listing.
type clipRow struct {
	Name     string  `csv:"name"`
	Frames   int32   `csv:"frames"`
	Bones    int32   `csv:"bones"`
	Duration float64 `csv:"duration"`
	DelayMS  int64   `csv:"blend_back_ms"`
	Idle     bool    `csv:"idle"`
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	modelPath := flag.String("model", "", "Model file (empty = model.path from config)")
	asCSV := flag.Bool("csv", false, "Write CSV to stdout instead of a table")
	showBones := flag.Bool("bones", false, "Also list the skeleton")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	path := cfg.Model.Path
	if *modelPath != "" {
		path = *modelPath
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "model not found: %v\n", err)
		os.Exit(1)
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	anims := rl.LoadModelAnimations(path)
	if len(anims) == 0 {
		fmt.Fprintf(os.Stderr, "%s has no animation clips\n", path)
		os.Exit(1)
	}
	defer rl.UnloadModelAnimations(anims)

	rows := make([]clipRow, len(anims))
	for i, a := range anims {
		duration := float64(a.FrameCount) / cfg.Model.SampleRate
		rows[i] = clipRow{
			Name:     a.GetName(),
			Frames:   a.FrameCount,
			Bones:    a.BoneCount,
			Duration: duration,
			DelayMS:  gesture.BlendBackDelay(duration, cfg.Gesture.FadeIn, cfg.Gesture.FadeOut).Milliseconds(),
			Idle:     a.GetName() == cfg.Gesture.IdleClip,
		}
	}

	if *asCSV {
		if err := gocsv.Marshal(rows, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "writing csv: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Printf("%s: %d clips at %.0f fps\n", path, len(rows), cfg.Model.SampleRate)
		fmt.Printf("  %-24s %7s %6s %9s %10s\n", "name", "frames", "bones", "duration", "blend-back")
		for _, r := range rows {
			marker := ""
			if r.Idle {
				marker = "  (idle)"
			}
			fmt.Printf("  %-24s %7d %6d %8.2fs %8dms%s\n", r.Name, r.Frames, r.Bones, r.Duration, r.DelayMS, marker)
		}
	}

	if *showBones {
		fmt.Println("\nSkeleton:")
		for i, b := range anims[0].GetBones() {
			fmt.Printf("  %3d %-32s parent=%d\n", i, renderer.BoneName(b), b.Parent)
		}
	}
}
