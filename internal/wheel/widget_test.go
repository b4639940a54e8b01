package wheel

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// recorder collects calls from both fakes in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

type fakeEngine struct {
	rec        *recorder
	segments   []Segment
	redraws    int
	onComplete func(Segment)
	// instant, when set, completes every spin synchronously with this segment.
	instant *Segment
}

func (e *fakeEngine) Redraw() {
	e.redraws++
	e.rec.add("redraw")
}

func (e *fakeEngine) StartAnimation(onComplete func(Segment)) {
	e.rec.add("start")
	e.onComplete = onComplete
	if e.instant != nil {
		onComplete(*e.instant)
	}
}

func (e *fakeEngine) AppendSegment(seg Segment) {
	e.rec.add("append:" + seg.Label)
	e.segments = append(e.segments, seg)
}

func (e *fakeEngine) RemoveLastSegment() {
	e.rec.add("remove")
	e.segments = e.segments[:len(e.segments)-1]
}

type fakeControls struct {
	rec         *recorder
	result      string
	spinEnabled bool
	name        string
	focused     bool
	warnings    []string
}

func (c *fakeControls) SetResult(text string) {
	c.rec.add("result:" + text)
	c.result = text
}

func (c *fakeControls) SetSpinEnabled(enabled bool) {
	if enabled {
		c.rec.add("enable")
	} else {
		c.rec.add("disable")
	}
	c.spinEnabled = enabled
}

func (c *fakeControls) NameValue() string { return c.name }
func (c *fakeControls) ClearName()        { c.name = "" }
func (c *fakeControls) FocusName()        { c.focused = true }

func (c *fakeControls) Warn(msg string) {
	c.rec.add("warn")
	c.warnings = append(c.warnings, msg)
}

func newTestWidget(t *testing.T, opts Options) (*Widget, *fakeEngine, *fakeControls) {
	t.Helper()
	rec := &recorder{}
	eng := &fakeEngine{rec: rec, segments: opts.Initial().Segments}
	ctl := &fakeControls{rec: rec}
	w := New(opts, eng, ctl)
	rec.calls = nil
	return w, eng, ctl
}

func TestPalette_At(t *testing.T) {
	t.Parallel()

	p := Palette{"a", "b", "c", "d", "e", "f"}
	tests := []struct {
		index int
		want  string
	}{
		{0, "a"},
		{3, "d"},
		{5, "f"},
		{6, "a"},
		{8, "c"},
		{-1, "f"},
		{-6, "a"},
		{-7, "f"},
	}

	for _, tt := range tests {
		if got := p.At(tt.index); got != tt.want {
			t.Errorf("At(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}

	if got := Palette(nil).At(3); got != "" {
		t.Errorf("empty palette At(3) = %q, want empty", got)
	}
}

func TestNew_InitialState(t *testing.T) {
	t.Parallel()

	w, _, ctl := newTestWidget(t, Options{})
	st := w.State()

	if !slices.Equal(st.Labels(), []string{"Alice", "Bob", "Charlie"}) {
		t.Errorf("Labels() = %v, want [Alice Bob Charlie]", st.Labels())
	}
	if st.NextColorIndex != 3 {
		t.Errorf("NextColorIndex = %d, want 3", st.NextColorIndex)
	}
	for i, seg := range st.Segments {
		if seg.Color != DefaultPalette[i] {
			t.Errorf("segment %d color = %q, want %q", i, seg.Color, DefaultPalette[i])
		}
	}
	if !ctl.spinEnabled {
		t.Error("spin trigger should start enabled")
	}
	if w.Spinning() {
		t.Error("widget should start idle")
	}
}

func TestNew_CustomPresets(t *testing.T) {
	t.Parallel()

	w, _, _ := newTestWidget(t, Options{Presets: []string{" Ann ", "", "Ben"}})
	st := w.State()

	if !slices.Equal(st.Labels(), []string{"Ann", "Ben"}) {
		t.Errorf("Labels() = %v, want [Ann Ben]", st.Labels())
	}
	if st.NextColorIndex != 2 {
		t.Errorf("NextColorIndex = %d, want 2", st.NextColorIndex)
	}
}

func TestAddSegment(t *testing.T) {
	t.Parallel()

	t.Run("appends trimmed name", func(t *testing.T) {
		t.Parallel()
		w, eng, ctl := newTestWidget(t, Options{})
		ctl.name = "stale"

		if err := w.AddSegment("  Dave  "); err != nil {
			t.Fatalf("AddSegment() error = %v", err)
		}

		st := w.State()
		if !slices.Equal(st.Labels(), []string{"Alice", "Bob", "Charlie", "Dave"}) {
			t.Errorf("Labels() = %v", st.Labels())
		}
		if st.NextColorIndex != 4 {
			t.Errorf("NextColorIndex = %d, want 4", st.NextColorIndex)
		}
		if got := st.Segments[3].Color; got != DefaultPalette[3] {
			t.Errorf("Dave color = %q, want %q", got, DefaultPalette[3])
		}
		if eng.redraws != 1 {
			t.Errorf("redraws = %d, want 1", eng.redraws)
		}
		if len(eng.segments) != 4 {
			t.Errorf("engine mirror has %d segments, want 4", len(eng.segments))
		}
		if ctl.name != "" {
			t.Errorf("name input = %q, want cleared", ctl.name)
		}
		if !ctl.focused {
			t.Error("name input should be focused")
		}
	})

	t.Run("rejects empty and whitespace", func(t *testing.T) {
		t.Parallel()
		w, eng, ctl := newTestWidget(t, Options{})
		before := w.State()

		for _, raw := range []string{"", "   ", "\t\n", ""} {
			if err := w.AddSegment(raw); !errors.Is(err, ErrEmptyName) {
				t.Errorf("AddSegment(%q) error = %v, want ErrEmptyName", raw, err)
			}
		}

		after := w.State()
		if !slices.Equal(before.Segments, after.Segments) || before.NextColorIndex != after.NextColorIndex {
			t.Errorf("state changed: before %+v, after %+v", before, after)
		}
		if eng.redraws != 0 {
			t.Errorf("redraws = %d, want 0", eng.redraws)
		}
		if len(ctl.warnings) != 4 || ctl.warnings[0] != MsgEmptyName {
			t.Errorf("warnings = %v, want 4x %q", ctl.warnings, MsgEmptyName)
		}
	})

	t.Run("color cycling wraps", func(t *testing.T) {
		t.Parallel()
		w, _, _ := newTestWidget(t, Options{})

		for _, name := range []string{"D", "E", "F", "G"} {
			if err := w.AddSegment(name); err != nil {
				t.Fatalf("AddSegment(%q) error = %v", name, err)
			}
		}

		segs := w.State().Segments
		wantIdx := []int{3, 4, 5, 0}
		for i, idx := range wantIdx {
			if got := segs[3+i].Color; got != DefaultPalette[idx] {
				t.Errorf("%s color = %q, want palette[%d] %q", segs[3+i].Label, got, idx, DefaultPalette[idx])
			}
		}
	})

	t.Run("duplicates allowed", func(t *testing.T) {
		t.Parallel()
		w, _, _ := newTestWidget(t, Options{})
		if err := w.AddSegment("Bob"); err != nil {
			t.Fatalf("AddSegment() error = %v", err)
		}
		if w.State().Len() != 4 {
			t.Errorf("Len() = %d, want 4", w.State().Len())
		}
	})
}

func TestSubmitName_UsesAddTrigger(t *testing.T) {
	t.Parallel()

	w, _, ctl := newTestWidget(t, Options{})
	ctl.name = " Eve"

	if err := w.SubmitName(); err != nil {
		t.Fatalf("SubmitName() error = %v", err)
	}
	if got := w.State().Labels(); got[len(got)-1] != "Eve" {
		t.Errorf("last label = %q, want Eve", got[len(got)-1])
	}

	ctl.name = "  "
	if err := w.SubmitName(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("SubmitName() with blank input error = %v, want ErrEmptyName", err)
	}
}

func TestRemoveSegment(t *testing.T) {
	t.Parallel()

	t.Run("removes last and decrements cursor", func(t *testing.T) {
		t.Parallel()
		w, eng, _ := newTestWidget(t, Options{})

		if err := w.RemoveSegment(); err != nil {
			t.Fatalf("RemoveSegment() error = %v", err)
		}
		st := w.State()
		if !slices.Equal(st.Labels(), []string{"Alice", "Bob"}) {
			t.Errorf("Labels() = %v, want [Alice Bob]", st.Labels())
		}
		if st.NextColorIndex != 2 {
			t.Errorf("NextColorIndex = %d, want 2", st.NextColorIndex)
		}
		if eng.redraws != 1 || len(eng.segments) != 2 {
			t.Errorf("engine redraws=%d segments=%d, want 1 and 2", eng.redraws, len(eng.segments))
		}
	})

	t.Run("keeps the last segment", func(t *testing.T) {
		t.Parallel()
		w, _, ctl := newTestWidget(t, Options{Presets: []string{"Alice", "Bob"}})

		if err := w.RemoveSegment(); err != nil {
			t.Fatalf("RemoveSegment() error = %v", err)
		}
		before := w.State()

		if err := w.RemoveSegment(); !errors.Is(err, ErrLastSegment) {
			t.Fatalf("RemoveSegment() error = %v, want ErrLastSegment", err)
		}
		after := w.State()
		if !slices.Equal(after.Labels(), []string{"Alice"}) {
			t.Errorf("Labels() = %v, want [Alice]", after.Labels())
		}
		if after.NextColorIndex != before.NextColorIndex {
			t.Errorf("NextColorIndex changed from %d to %d", before.NextColorIndex, after.NextColorIndex)
		}
		if len(ctl.warnings) != 1 || ctl.warnings[0] != MsgLastSegment {
			t.Errorf("warnings = %v, want [%q]", ctl.warnings, MsgLastSegment)
		}
	})

	t.Run("cursor may go negative", func(t *testing.T) {
		t.Parallel()
		w, _, _ := newTestWidget(t, Options{Presets: []string{"A", "B"}})
		w.state.NextColorIndex = 0
		if err := w.RemoveSegment(); err != nil {
			t.Fatalf("RemoveSegment() error = %v", err)
		}
		if w.State().NextColorIndex != -1 {
			t.Errorf("NextColorIndex = %d, want -1", w.State().NextColorIndex)
		}
		if err := w.AddSegment("C"); err != nil {
			t.Fatalf("AddSegment() error = %v", err)
		}
		if got := w.State().Segments[1].Color; got != DefaultPalette[5] {
			t.Errorf("color after negative cursor = %q, want %q", got, DefaultPalette[5])
		}
	})
}

func TestAddThenRemove_RestoresState(t *testing.T) {
	t.Parallel()

	w, _, _ := newTestWidget(t, Options{})
	before := w.State()

	if err := w.AddSegment("X"); err != nil {
		t.Fatalf("AddSegment() error = %v", err)
	}
	if err := w.RemoveSegment(); err != nil {
		t.Fatalf("RemoveSegment() error = %v", err)
	}

	after := w.State()
	if !slices.Equal(before.Segments, after.Segments) {
		t.Errorf("segments = %v, want %v", after.Segments, before.Segments)
	}
	if before.NextColorIndex != after.NextColorIndex {
		t.Errorf("NextColorIndex = %d, want %d", after.NextColorIndex, before.NextColorIndex)
	}
}

func TestRequestSpin(t *testing.T) {
	t.Parallel()

	t.Run("rejects fewer than two segments", func(t *testing.T) {
		t.Parallel()
		w, eng, ctl := newTestWidget(t, Options{Presets: []string{"Alice"}})
		ctl.result = "previous"

		if err := w.RequestSpin(); !errors.Is(err, ErrTooFewSegments) {
			t.Fatalf("RequestSpin() error = %v, want ErrTooFewSegments", err)
		}
		if w.Spinning() {
			t.Error("widget should not be spinning")
		}
		if ctl.result != "previous" {
			t.Errorf("result = %q, want unchanged", ctl.result)
		}
		if eng.onComplete != nil {
			t.Error("animation should not start")
		}
		if len(ctl.warnings) != 1 || ctl.warnings[0] != MsgTooFew {
			t.Errorf("warnings = %v, want [%q]", ctl.warnings, MsgTooFew)
		}
	})

	t.Run("spin lifecycle", func(t *testing.T) {
		t.Parallel()
		w, eng, ctl := newTestWidget(t, Options{})

		if err := w.RequestSpin(); err != nil {
			t.Fatalf("RequestSpin() error = %v", err)
		}
		if ctl.result != MsgSpinning {
			t.Errorf("result = %q, want %q", ctl.result, MsgSpinning)
		}
		if ctl.spinEnabled {
			t.Error("spin trigger should be disabled while spinning")
		}
		if !w.Spinning() {
			t.Error("widget should be spinning")
		}

		eng.onComplete(Segment{Label: "Bob", Color: "#FF6347"})

		if !strings.Contains(ctl.result, "Bob") {
			t.Errorf("result = %q, want to contain Bob", ctl.result)
		}
		if !ctl.spinEnabled {
			t.Error("spin trigger should be re-enabled")
		}
		if w.Spinning() {
			t.Error("widget should be idle")
		}
		if seg, ok := w.LastWinner(); !ok || seg.Label != "Bob" {
			t.Errorf("LastWinner() = %v, %v, want Bob", seg, ok)
		}
	})

	t.Run("display updates precede animation start", func(t *testing.T) {
		t.Parallel()
		w, eng, ctl := newTestWidget(t, Options{})
		eng.instant = &Segment{Label: "Alice", Color: "#FFD700"}

		if err := w.RequestSpin(); err != nil {
			t.Fatalf("RequestSpin() error = %v", err)
		}

		want := []string{"result:" + MsgSpinning, "disable", "start", "result:" + PlainWinner(*eng.instant), "enable"}
		if !slices.Equal(eng.rec.calls, want) {
			t.Errorf("calls = %v, want %v", eng.rec.calls, want)
		}
		if !ctl.spinEnabled || w.Spinning() {
			t.Error("synchronous completion should leave the widget idle")
		}
	})

	t.Run("second request while spinning is ignored", func(t *testing.T) {
		t.Parallel()
		w, eng, _ := newTestWidget(t, Options{})

		_ = w.RequestSpin()
		first := eng.onComplete
		if err := w.RequestSpin(); !errors.Is(err, ErrSpinInProgress) {
			t.Errorf("RequestSpin() error = %v, want ErrSpinInProgress", err)
		}
		starts := 0
		for _, c := range eng.rec.calls {
			if c == "start" {
				starts++
			}
		}
		if starts != 1 {
			t.Errorf("animation started %d times, want 1", starts)
		}
		first(Segment{Label: "Alice"})
	})

	t.Run("completion is single shot", func(t *testing.T) {
		t.Parallel()
		w, eng, _ := newTestWidget(t, Options{})

		_ = w.RequestSpin()
		done := eng.onComplete
		done(Segment{Label: "Alice"})
		done(Segment{Label: "Charlie"})

		if got := w.History(); len(got) != 1 || got[0].Label != "Alice" {
			t.Errorf("History() = %v, want [Alice]", got)
		}
	})

	t.Run("custom winner format", func(t *testing.T) {
		t.Parallel()
		w, eng, ctl := newTestWidget(t, Options{FormatWinner: func(s Segment) string {
			return "<" + s.Color + ">" + s.Label
		}})
		eng.instant = &Segment{Label: "Bob", Color: "#FF6347"}

		_ = w.RequestSpin()
		if ctl.result != "<#FF6347>Bob" {
			t.Errorf("result = %q, want %q", ctl.result, "<#FF6347>Bob")
		}
	})
}

func TestMutationsBlockedWhileSpinning(t *testing.T) {
	t.Parallel()

	w, eng, ctl := newTestWidget(t, Options{})
	_ = w.RequestSpin()
	before := w.State()

	if err := w.AddSegment("Dave"); !errors.Is(err, ErrSpinInProgress) {
		t.Errorf("AddSegment() error = %v, want ErrSpinInProgress", err)
	}
	if err := w.RemoveSegment(); !errors.Is(err, ErrSpinInProgress) {
		t.Errorf("RemoveSegment() error = %v, want ErrSpinInProgress", err)
	}
	if !slices.Equal(before.Segments, w.State().Segments) {
		t.Error("segments changed during spin")
	}
	if len(ctl.warnings) != 2 || ctl.warnings[0] != MsgWaitForSpin {
		t.Errorf("warnings = %v, want 2x %q", ctl.warnings, MsgWaitForSpin)
	}

	eng.onComplete(Segment{Label: "Charlie"})
	if err := w.AddSegment("Dave"); err != nil {
		t.Errorf("AddSegment() after spin error = %v", err)
	}
}

func TestTally(t *testing.T) {
	t.Parallel()

	w, eng, _ := newTestWidget(t, Options{})
	for _, label := range []string{"Bob", "Alice", "Bob"} {
		_ = w.RequestSpin()
		eng.onComplete(Segment{Label: label})
	}

	tally := w.Tally()
	if tally["Bob"] != 2 || tally["Alice"] != 1 {
		t.Errorf("Tally() = %v, want Bob=2 Alice=1", tally)
	}
}
