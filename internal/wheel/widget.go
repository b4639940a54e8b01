package wheel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raphi011/spinelli/internal/log"
)

// Validation errors. They are reported to the user through Controls.Warn
// before being returned.
var (
	ErrTooFewSegments = errors.New("at least two segments are required to spin")
	ErrEmptyName      = errors.New("name is empty")
	ErrLastSegment    = errors.New("cannot remove the last segment")
	ErrSpinInProgress = errors.New("spin in progress")
)

// User-facing messages.
const (
	MsgSpinning      = "Spinning..."
	MsgTooFew        = "Please add at least two names to the wheel!"
	MsgEmptyName     = "Please enter a name."
	MsgLastSegment   = "Cannot remove the last name."
	MsgWaitForSpin   = "Wait for the wheel to stop."
	defaultWinnerFmt = "Winner is: %s! 🎉"
)

// Engine is the drawing and animation capability the widget drives.
//
// Implementations keep their own mirror of the segment list, updated
// through AppendSegment and RemoveLastSegment, and render it on Redraw.
type Engine interface {
	Redraw()
	// StartAnimation begins a spin and calls onComplete exactly once with
	// the segment the wheel stopped on. onComplete may be called before
	// StartAnimation returns.
	StartAnimation(onComplete func(Segment))
	AppendSegment(seg Segment)
	RemoveLastSegment()
}

// Controls is the user-facing surface bound to the widget.
type Controls interface {
	SetResult(text string)
	SetSpinEnabled(enabled bool)
	NameValue() string
	ClearName()
	FocusName()
	Warn(msg string)
}

// Options configures a Widget. Zero values fall back to the defaults.
type Options struct {
	Palette Palette
	Presets []string
	// FormatWinner renders the result display text for a winner.
	FormatWinner func(Segment) string
	Logger       *log.Logger
}

// Widget is the prize wheel controller.
type Widget struct {
	engine   Engine
	controls Controls
	palette  Palette
	format   func(Segment) string
	log      *log.Logger

	state    State
	spinning bool
	spinID   int
	history  []Segment
}

// InitialState builds the starting segments for the given presets. Colors
// are taken from the palette starting at offset 0 and the cursor is left
// pointing past the last preset.
func InitialState(palette Palette, presets []string) State {
	st := State{}
	for _, name := range presets {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		st.Segments = append(st.Segments, Segment{Label: name, Color: palette.At(st.NextColorIndex)})
		st.NextColorIndex++
	}
	return st
}

// New creates a widget bound to an engine and a set of controls. The
// engine is expected to already hold the segments of InitialState for the
// same options (see Options.Initial).
func New(opts Options, engine Engine, controls Controls) *Widget {
	opts = opts.withDefaults()
	w := &Widget{
		engine:   engine,
		controls: controls,
		palette:  opts.Palette,
		format:   opts.FormatWinner,
		log:      opts.Logger,
		state:    InitialState(opts.Palette, opts.Presets),
	}
	controls.SetSpinEnabled(true)
	return w
}

// Initial returns the state a widget built with these options starts in.
func (o Options) Initial() State {
	o = o.withDefaults()
	return InitialState(o.Palette, o.Presets)
}

func (o Options) withDefaults() Options {
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
	if o.Presets == nil {
		o.Presets = DefaultPresets
	}
	if o.FormatWinner == nil {
		o.FormatWinner = PlainWinner
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, false, false)
	}
	return o
}

// PlainWinner formats a winner message without styling.
func PlainWinner(seg Segment) string {
	return fmt.Sprintf(defaultWinnerFmt, seg.Label)
}

// RequestSpin starts a spin if at least two segments are on the wheel.
func (w *Widget) RequestSpin() error {
	if w.spinning {
		w.log.Debug("spin ignored", "reason", "in progress")
		return ErrSpinInProgress
	}
	if w.state.Len() < 2 {
		w.controls.Warn(MsgTooFew)
		return ErrTooFewSegments
	}

	w.spinning = true
	w.spinID++
	id := w.spinID

	// The display must reflect the spin before the engine starts, since
	// an engine may complete synchronously.
	w.controls.SetResult(MsgSpinning)
	w.controls.SetSpinEnabled(false)

	w.log.Debug("spin started", "segments", w.state.Len(), "spin", id)
	w.engine.StartAnimation(func(seg Segment) {
		w.onSpinComplete(id, seg)
	})
	return nil
}

func (w *Widget) onSpinComplete(id int, winner Segment) {
	if !w.spinning || id != w.spinID {
		w.log.Debug("duplicate spin completion dropped", "spin", id)
		return
	}
	w.spinning = false
	w.history = append(w.history, winner)

	w.controls.SetResult(w.format(winner))
	w.controls.SetSpinEnabled(true)
	w.log.Debug("spin finished", "winner", winner.Label, "color", winner.Color, "spin", id)
}

// AddSegment appends a segment named after the trimmed input.
func (w *Widget) AddSegment(raw string) error {
	if w.spinning {
		w.controls.Warn(MsgWaitForSpin)
		return ErrSpinInProgress
	}
	name := strings.TrimSpace(raw)
	if name == "" {
		w.controls.Warn(MsgEmptyName)
		return ErrEmptyName
	}

	seg := Segment{Label: name, Color: w.palette.At(w.state.NextColorIndex)}
	w.state.Segments = append(w.state.Segments, seg)
	w.state.NextColorIndex++

	w.engine.AppendSegment(seg)
	w.engine.Redraw()

	w.controls.ClearName()
	w.controls.FocusName()
	w.log.Debug("segment added", "label", seg.Label, "color", seg.Color)
	return nil
}

// Add is the add trigger: it submits the current name input.
func (w *Widget) Add() error {
	return w.AddSegment(w.controls.NameValue())
}

// SubmitName handles Enter in the name input. It goes through the add
// trigger so both paths behave identically.
func (w *Widget) SubmitName() error {
	return w.Add()
}

// RemoveSegment removes the most recently added segment. The last
// remaining segment can never be removed.
func (w *Widget) RemoveSegment() error {
	if w.spinning {
		w.controls.Warn(MsgWaitForSpin)
		return ErrSpinInProgress
	}
	if w.state.Len() <= 1 {
		w.controls.Warn(MsgLastSegment)
		return ErrLastSegment
	}

	last := w.state.Segments[len(w.state.Segments)-1]
	w.state.Segments = w.state.Segments[:len(w.state.Segments)-1]
	w.state.NextColorIndex--

	w.engine.RemoveLastSegment()
	w.engine.Redraw()
	w.log.Debug("segment removed", "label", last.Label)
	return nil
}

// Spinning reports whether a spin is in progress.
func (w *Widget) Spinning() bool {
	return w.spinning
}

// State returns a copy of the current wheel contents.
func (w *Widget) State() State {
	return w.state.Clone()
}

// LastWinner returns the most recent winner, if any spin has completed.
func (w *Widget) LastWinner() (Segment, bool) {
	if len(w.history) == 0 {
		return Segment{}, false
	}
	return w.history[len(w.history)-1], true
}

// History returns the winners of this session in order.
func (w *Widget) History() []Segment {
	out := make([]Segment, len(w.history))
	copy(out, w.history)
	return out
}

// Tally counts wins per label for this session.
func (w *Widget) Tally() map[string]int {
	t := make(map[string]int, len(w.history))
	for _, seg := range w.history {
		t[seg.Label]++
	}
	return t
}
