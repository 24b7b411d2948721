// Package game wires the character, the gaze rig and the gesture controller
// together and runs them in either the raylib window loop or a headless loop.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/puppet/anim"
	"github.com/pthm-cable/puppet/camera"
	"github.com/pthm-cable/puppet/config"
	"github.com/pthm-cable/puppet/gaze"
	"github.com/pthm-cable/puppet/gesture"
	"github.com/pthm-cable/puppet/input"
	"github.com/pthm-cable/puppet/renderer"
	"github.com/pthm-cable/puppet/rig"
	"github.com/pthm-cable/puppet/telemetry"
	"github.com/pthm-cable/puppet/ui"
)

// perfWindow is the number of updates per perf flush.
const perfWindow = 60

// Options configures game initialization.
type Options struct {
	Seed       int64
	Headless   bool
	ScriptPath string // CSV of pointer events to replay (optional)
	OutputDir  string // Directory for CSV logs and config snapshot (optional)
	LogStats   bool   // Log perf windows via slog
}

// Game holds the complete viewer state.
type Game struct {
	rng      *rand.Rand
	headless bool
	logStats bool

	mixer      *anim.Mixer
	controller *gesture.Controller
	rig        *rig.Rig
	camera     *camera.Camera

	// Graphics, nil when headless
	character *renderer.Character
	hitTarget *renderer.HitTarget
	stage     *renderer.Stage
	debug     *ui.DebugPanel

	hud    *ui.HUD
	source input.Source
	script *input.ScriptSource

	// Telemetry
	outputManager *telemetry.OutputManager
	perfCollector *telemetry.PerfCollector
	selection     *telemetry.SelectionStats

	// State
	frame         int
	clock         float64
	cycles        int
	rejected      int // Clicks rejected since the last accepted cycle
	pointer       gaze.PointerSample
	lastActivate  gaze.PointerSample
	showHitTarget bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. In graphical mode the raylib window must
// already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	g := &Game{
		rng:           rand.New(rand.NewSource(opts.Seed)),
		headless:      opts.Headless,
		logStats:      opts.LogStats,
		hud:           ui.NewHUD(cfg.Gesture.ReadyText),
		perfCollector: telemetry.NewPerfCollector(perfWindow),
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
	}

	g.camera = camera.New(cfg.Camera.Position, cfg.Camera.Target, cfg.Camera.Fovy, g.screenWidth, g.screenHeight)
	g.camera.SetDollyRange(cfg.Camera.MinDist, cfg.Camera.MaxDist)

	g.rig = rig.New(gaze.Shape{
		VerticalSplit: cfg.Gaze.VerticalSplit,
		UpFactor:      cfg.Gaze.UpFactor,
		DownDivisor:   cfg.Gaze.DownDivisor,
	})

	var (
		clips []anim.Clip
		hit   gesture.HitTester
	)
	if opts.Headless {
		clips = headlessClips(cfg.Headless.Clips)
		r := cfg.Headless.HitRect
		hit = input.ScreenRect{X: r[0], Y: r[1], W: r[2], H: r[3]}
		// no skeleton: joints are tracked for telemetry only
		for _, j := range cfg.Joints {
			g.rig.AddJoint(j.Name, -1, j.Limit)
		}
	} else {
		ch, err := renderer.LoadCharacter(cfg.Model, cfg.Gesture.IdleClip)
		if err != nil {
			return nil, err
		}
		g.character = ch
		clips = ch.Clips()
		g.bindJoints(cfg.Joints)
		g.stage = renderer.NewStage(cfg.Stage)
		g.hitTarget = renderer.NewHitTarget(cfg.HitTarget, ch.Position(), g.camera3D)
		hit = g.hitTarget
		g.debug = ui.NewDebugPanel(10, 10, 280)
	}

	g.mixer = anim.NewMixer(clips)
	g.mixer.OnFinished(g.onClipFinished)

	ctrl, err := gesture.NewController(gestureConfig(cfg.Gesture), g.mixer, g.mixer, g.hud, hit, g.rng)
	if err != nil {
		g.Unload()
		return nil, fmt.Errorf("building gesture controller: %w", err)
	}
	g.controller = ctrl
	g.controller.OnCycle(g.onCycle)
	g.selection = telemetry.NewSelectionStats(ctrl.Pool())

	if !g.mixer.PlayLoop(cfg.Gesture.IdleClip) {
		g.Unload()
		return nil, fmt.Errorf("%w: %q", gesture.ErrNoIdleClip, cfg.Gesture.IdleClip)
	}

	if err := g.setupSource(opts); err != nil {
		g.Unload()
		return nil, err
	}

	if err := g.setupOutput(opts.OutputDir); err != nil {
		g.Unload()
		return nil, err
	}

	slog.Info("character ready",
		"clips", len(clips),
		"pool", ctrl.Pool(),
		"joints", g.rig.Len(),
		"headless", opts.Headless,
	)

	return g, nil
}

// bindJoints registers every configured joint whose bone exists in the skeleton.
func (g *Game) bindJoints(joints []config.JointConfig) {
	for _, j := range joints {
		bone, ok := g.character.BoneIndex(j.Bone)
		if !ok {
			slog.Warn("joint bone not found, gaze disabled for joint", "joint", j.Name, "bone", j.Bone)
			continue
		}
		g.rig.AddJoint(j.Name, bone, j.Limit)
	}
}

func (g *Game) setupSource(opts Options) error {
	if opts.ScriptPath != "" {
		script, err := input.LoadScript(opts.ScriptPath)
		if err != nil {
			return err
		}
		g.script = script
		g.source = script
		return nil
	}
	if !opts.Headless {
		g.source = newRaylibSource()
	}
	return nil
}

func (g *Game) setupOutput(dir string) error {
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		return err
	}
	g.outputManager = om
	if err := om.WriteConfig(config.Cfg()); err != nil {
		return err
	}
	return nil
}

func headlessClips(cfg []config.ClipConfig) []anim.Clip {
	clips := make([]anim.Clip, len(cfg))
	for i, c := range cfg {
		clips[i] = anim.Clip{Name: c.Name, Duration: c.Duration}
	}
	return clips
}

func gestureConfig(cfg config.GestureConfig) gesture.Config {
	return gesture.Config{
		IdleClip:       cfg.IdleClip,
		FadeIn:         cfg.FadeIn,
		FadeOut:        cfg.FadeOut,
		ProgressOffset: cfg.ProgressOffset,
		MovingText:     cfg.MovingText,
		MousePrompt:    cfg.MousePrompt,
		TouchPrompt:    cfg.TouchPrompt,
	}
}

func (g *Game) camera3D() rl.Camera3D {
	return renderer.Camera3D(g.camera)
}

// Frame returns the number of updates run.
func (g *Game) Frame() int { return g.frame }

// Cycles returns the number of accepted gesture cycles.
func (g *Game) Cycles() int { return g.cycles }

// Done reports whether a scripted run has replayed every event and settled
// back to idle. Unscripted runs never finish on their own.
func (g *Game) Done() bool {
	if g.script == nil || !g.script.Done() {
		return false
	}
	return g.controller.State() == gesture.StateIdle && g.mixer.Pending() == 0
}
