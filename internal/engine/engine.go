// Package engine draws a prize wheel on a terminal cell grid and animates
// spins.
//
// [Engine] implements [wheel.Engine]. It keeps its own copy of the segment
// list and renders it into a string of styled cells ([Engine.Frame]).
// Animation is time based: the caller drives it with [Engine.Advance] from
// its event loop (the wheel view uses a bubbletea tick), and the completion
// callback passed to StartAnimation runs inside the Advance call that
// finishes the spin.
package engine

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/raphi011/spinelli/internal/config"
	"github.com/raphi011/spinelli/internal/wheel"
)

// Config holds the geometry, styling and animation settings of a wheel.
type Config struct {
	OuterRadius  int
	InnerRadius  int
	TextColor    string
	OutlineColor string
	OutlineWidth int
	PointerAngle float64 // degrees clockwise from top
	CellAspect   float64 // cell width / cell height

	Duration time.Duration
	Spins    int
	Easing   string
	FPS      int

	Pins      int
	PinFill   string
	PinStroke string
}

// ConfigFrom maps a loaded configuration to engine settings.
func ConfigFrom(cfg config.Config) Config {
	return Config{
		OuterRadius:  cfg.Wheel.OuterRadius,
		InnerRadius:  cfg.Wheel.InnerRadius,
		TextColor:    cfg.Wheel.TextColor,
		OutlineColor: cfg.Wheel.OutlineColor,
		OutlineWidth: cfg.Wheel.OutlineWidth,
		PointerAngle: cfg.Wheel.PointerAngle,
		CellAspect:   cfg.Wheel.CellAspect,
		Duration:     cfg.Animation.DurationValue(),
		Spins:        cfg.Animation.Spins,
		Easing:       cfg.Animation.Easing,
		FPS:          cfg.Animation.FPS,
		Pins:         cfg.Pins.Number,
		PinFill:      cfg.Pins.Fill,
		PinStroke:    cfg.Pins.Stroke,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used to pick stop positions.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithPinHook registers a function called whenever the pointer passes a
// pin during a spin.
func WithPinHook(fn func()) Option {
	return func(e *Engine) { e.onPin = fn }
}

// Engine is a terminal wheel renderer and spin animator.
type Engine struct {
	cfg      Config
	segments []wheel.Segment
	rotation float64 // degrees the wheel is turned clockwise
	anim     *animation
	frame    string
	rand     *rand.Rand
	onPin    func()
}

type animation struct {
	start      time.Time
	started    bool
	from, to   float64
	duration   time.Duration
	onComplete func(wheel.Segment)
	lastPin    int

	// spring easing state
	spring     harmonica.Spring
	springPos  float64
	springVel  float64
	springStep int
}

// New creates an engine holding a copy of segments and renders the first
// frame.
func New(cfg Config, segments []wheel.Segment, opts ...Option) *Engine {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.CellAspect <= 0 {
		cfg.CellAspect = 0.5
	}
	e := &Engine{
		cfg:      cfg,
		segments: append([]wheel.Segment(nil), segments...),
		rand:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Redraw()
	return e
}

// Redraw re-renders the current segments.
func (e *Engine) Redraw() {
	e.frame = e.render()
}

// Frame returns the most recently rendered frame.
func (e *Engine) Frame() string {
	return e.frame
}

// AppendSegment adds a segment to the engine's copy of the wheel.
func (e *Engine) AppendSegment(seg wheel.Segment) {
	e.segments = append(e.segments, seg)
}

// RemoveLastSegment drops the last segment from the engine's copy.
func (e *Engine) RemoveLastSegment() {
	if len(e.segments) > 0 {
		e.segments = e.segments[:len(e.segments)-1]
	}
}

// Segments returns a copy of the engine's segment list.
func (e *Engine) Segments() []wheel.Segment {
	return append([]wheel.Segment(nil), e.segments...)
}

// Rotation returns the current wheel rotation in degrees, in [0, 360)
// when idle.
func (e *Engine) Rotation() float64 {
	return e.rotation
}

// Animating reports whether a spin is in progress.
func (e *Engine) Animating() bool {
	return e.anim != nil
}

// Interval returns the frame interval for the configured FPS.
func (e *Engine) Interval() time.Duration {
	return time.Second / time.Duration(e.cfg.FPS)
}

// StartAnimation begins a spin to a random stop position. The clock starts
// at the first Advance call. Starting while a spin is running is a no-op.
func (e *Engine) StartAnimation(onComplete func(wheel.Segment)) {
	if e.anim != nil {
		return
	}
	n := len(e.segments)
	if n == 0 {
		onComplete(wheel.Segment{})
		return
	}

	// Land inside the middle 80% of the chosen segment so the winner is
	// never ambiguous on a boundary.
	arc := 360 / float64(n)
	idx := e.rand.IntN(n)
	offset := (float64(idx) + 0.1 + 0.8*e.rand.Float64()) * arc

	// Wheel angle under the pointer is pointer - rotation, so the final
	// rotation must be congruent to pointer - offset.
	delta := normalize(e.cfg.PointerAngle - offset - e.rotation)
	to := e.rotation + float64(e.cfg.Spins)*360 + delta

	e.anim = &animation{
		from:       e.rotation,
		to:         to,
		duration:   e.cfg.Duration,
		onComplete: onComplete,
		lastPin:    e.pinIndex(e.rotation),
	}
	if e.cfg.Easing == config.EasingSpring {
		// Critically damped; ease blends the remainder in near the end.
		secs := math.Max(e.cfg.Duration.Seconds(), 0.001)
		e.anim.spring = harmonica.NewSpring(harmonica.FPS(e.cfg.FPS), 7/secs, 1.0)
	}
}

// Advance moves the animation to time now and re-renders. It returns true
// while the spin is still running. The spin's completion callback is
// invoked from the call that finishes it.
func (e *Engine) Advance(now time.Time) bool {
	a := e.anim
	if a == nil {
		return false
	}
	if !a.started {
		a.start = now
		a.started = true
	}

	elapsed := now.Sub(a.start)
	if elapsed >= a.duration {
		e.rotation = normalize(a.to)
		e.anim = nil
		e.Redraw()
		winner, _ := e.SegmentAt(e.rotation)
		a.onComplete(winner)
		return false
	}

	p := float64(elapsed) / float64(a.duration)
	e.rotation = a.from + (a.to-a.from)*e.ease(a, p, elapsed)

	if pin := e.pinIndex(e.rotation); pin != a.lastPin {
		a.lastPin = pin
		if e.onPin != nil {
			e.onPin()
		}
	}

	e.Redraw()
	return true
}

const springBlendStart = 0.8

func (e *Engine) ease(a *animation, p float64, elapsed time.Duration) float64 {
	switch e.cfg.Easing {
	case config.EasingLinear:
		return p
	case config.EasingPower2Out:
		return 1 - math.Pow(1-p, 2)
	case config.EasingSpring:
		steps := int(elapsed / e.Interval())
		for a.springStep < steps {
			a.springPos, a.springVel = a.spring.Update(a.springPos, a.springVel, 1)
			a.springStep++
		}
		// The spring is still short of the target at the end; pull it in
		// over the last fifth so the final frame lands without a jump.
		pos := math.Min(a.springPos, 1)
		w := math.Max(0, (p-springBlendStart)/(1-springBlendStart))
		return pos + (1-pos)*w
	default:
		return 1 - math.Pow(1-p, 4)
	}
}

// SegmentAt returns the segment under the pointer for a rotation.
func (e *Engine) SegmentAt(rotation float64) (wheel.Segment, int) {
	n := len(e.segments)
	if n == 0 {
		return wheel.Segment{}, -1
	}
	idx := segmentIndex(normalize(e.cfg.PointerAngle-rotation), n)
	return e.segments[idx], idx
}

func (e *Engine) pinIndex(rotation float64) int {
	if e.cfg.Pins <= 0 {
		return 0
	}
	return int(math.Floor((rotation - e.cfg.PointerAngle) / (360 / float64(e.cfg.Pins))))
}

// segmentIndex maps a wheel angle in [0, 360) to a segment index.
func segmentIndex(angle float64, n int) int {
	idx := int(angle / (360 / float64(n)))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// normalize maps an angle into [0, 360).
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
