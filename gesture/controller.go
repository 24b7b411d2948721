// Package gesture implements the click-to-gesture cross-fade controller.
//
// A click on the character's hit target picks a random one-shot clip, fades
// idle into it, and schedules a fade back to idle so that the blend finishes
// exactly when the clip ends. Further clicks are ignored until the fade back
// starts.
package gesture

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// State is the controller phase.
type State int

const (
	StateIdle     State = iota // Idle loop only
	StateToAction              // Gesture playing, re-triggering locked
	StateToIdle                // Blending back to idle, unlocked
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateToAction:
		return "to_action"
	case StateToIdle:
		return "to_idle"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrNoIdleClip is returned when the mixer has no clip with the idle name.
	ErrNoIdleClip = errors.New("gesture: idle clip not found")
	// ErrNoGestureClips is returned when the idle clip is the only clip.
	ErrNoGestureClips = errors.New("gesture: no one-shot clips besides idle")
)

// Config holds cross-fade timing and status texts.
type Config struct {
	IdleClip       string
	FadeIn         float64 // Seconds, idle -> gesture
	FadeOut        float64 // Seconds, gesture -> idle
	ProgressOffset float64 // Progress bar runs for duration minus this
	MovingText     string
	MousePrompt    string
	TouchPrompt    string
}

// DefaultConfig returns the stock timing: 0.25s fades, 0.5s progress offset.
func DefaultConfig() Config {
	return Config{
		IdleClip:       "idle",
		FadeIn:         0.25,
		FadeOut:        0.25,
		ProgressOffset: 0.5,
		MovingText:     "HE IS MOVING",
		MousePrompt:    "CLICK HIM AGAIN",
		TouchPrompt:    "TAP HIM AGAIN",
	}
}

// Cycle describes one accepted gesture.
type Cycle struct {
	Seq      uint64
	Clip     string
	Duration float64
	Delay    time.Duration // Time from play to the start of the blend back
	Pointer  PointerKind
}

// Controller is the cross-fade state machine. It is not safe for concurrent
// use; every method runs on the render loop.
type Controller struct {
	cfg     Config
	mixer   Mixer
	sched   Scheduler
	present Presenter
	hit     HitTester
	rng     *rand.Rand

	pool    []string
	state   State
	locked  bool
	seq     uint64
	current string

	onCycle []func(Cycle)
}

// NewController builds a controller over the mixer's clips. Every clip except
// cfg.IdleClip becomes a gesture candidate.
func NewController(cfg Config, mixer Mixer, sched Scheduler, present Presenter, hit HitTester, rng *rand.Rand) (*Controller, error) {
	if _, ok := mixer.Duration(cfg.IdleClip); !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoIdleClip, cfg.IdleClip)
	}

	var pool []string
	for _, name := range mixer.Clips() {
		if name != cfg.IdleClip {
			pool = append(pool, name)
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoGestureClips
	}

	if present == nil {
		present = NopPresenter{}
	}
	if hit == nil {
		hit = HitFunc(func(float32, float32) bool { return true })
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Controller{
		cfg:     cfg,
		mixer:   mixer,
		sched:   sched,
		present: present,
		hit:     hit,
		rng:     rng,
		pool:    pool,
	}, nil
}

// BlendBackDelay returns how long after play the fade back to idle must start
// so that both fades fit inside the clip, rounded to whole milliseconds.
// Negative results clamp to zero.
func BlendBackDelay(clipDuration, fadeIn, fadeOut float64) time.Duration {
	secs := clipDuration - (fadeIn + fadeOut)
	if secs <= 0 {
		return 0
	}
	return time.Duration(math.Round(secs*1000)) * time.Millisecond
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Locked reports whether clicks are currently ignored.
func (c *Controller) Locked() bool { return c.locked }

// Current returns the clip of the most recent cycle.
func (c *Controller) Current() string { return c.current }

// Pool returns the gesture candidates.
func (c *Controller) Pool() []string { return c.pool }

// OnCycle registers a callback invoked for every accepted gesture.
func (c *Controller) OnCycle(fn func(Cycle)) {
	c.onCycle = append(c.onCycle, fn)
}

// Activate handles a click or tap at a screen position. It returns true when
// a new gesture cycle starts.
func (c *Controller) Activate(x, y float32, kind PointerKind) bool {
	if c.locked {
		return false
	}
	if !c.hit.Hit(x, y) {
		return false
	}

	clip := c.pool[c.rng.Intn(len(c.pool))]
	c.start(clip, kind)
	return true
}

// start runs the Idle -> ToAction transition for clip.
func (c *Controller) start(clip string, kind PointerKind) {
	duration, _ := c.mixer.Duration(clip)

	c.locked = true
	c.state = StateToAction
	c.seq++
	c.current = clip
	seq := c.seq

	c.mixer.PlayOnce(clip)
	c.mixer.CrossFade(c.cfg.IdleClip, clip, c.cfg.FadeIn)

	c.present.SetProgressDuration(duration - c.cfg.ProgressOffset)
	c.present.SetStatus(c.cfg.MovingText)

	delay := BlendBackDelay(duration, c.cfg.FadeIn, c.cfg.FadeOut)
	c.sched.After(delay, func() { c.blendBack(seq, clip, kind) })

	cycle := Cycle{Seq: seq, Clip: clip, Duration: duration, Delay: delay, Pointer: kind}
	for _, fn := range c.onCycle {
		fn(cycle)
	}
}

// blendBack runs the ToAction -> ToIdle transition. The lock clears as the
// fade starts, so a click during the fade begins a new cycle.
func (c *Controller) blendBack(seq uint64, clip string, kind PointerKind) {
	c.mixer.Enable(c.cfg.IdleClip)
	c.mixer.CrossFade(clip, c.cfg.IdleClip, c.cfg.FadeOut)

	c.locked = false
	c.state = StateToIdle
	c.present.SetStatus(c.prompt(kind))

	c.sched.After(seconds(c.cfg.FadeOut), func() {
		if c.seq == seq && c.state == StateToIdle {
			c.state = StateIdle
		}
	})
}

func (c *Controller) prompt(kind PointerKind) string {
	if kind == PointerTouch {
		return c.cfg.TouchPrompt
	}
	return c.cfg.MousePrompt
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
