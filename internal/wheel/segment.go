package wheel

// Segment is one named, colored slice of the wheel.
type Segment struct {
	Label string `json:"label"`
	Color string `json:"color"` // palette token, e.g. "#FF6347"
}

// DefaultPalette is the color cycle used when no palette is configured.
var DefaultPalette = Palette{"#FFD700", "#FF6347", "#ADFF2F", "#40E0D0", "#EE82EE", "#6A5ACD"}

// DefaultPresets are the names the wheel starts with.
var DefaultPresets = []string{"Alice", "Bob", "Charlie"}

// Palette is a fixed ordered set of colors cycled through as segments are added.
type Palette []string

// At returns the color for a cursor value. The cursor may be negative or
// exceed the palette length; it is normalized into range.
func (p Palette) At(i int) string {
	n := len(p)
	if n == 0 {
		return ""
	}
	return p[((i%n)+n)%n]
}

// State is a snapshot of the wheel contents.
type State struct {
	Segments       []Segment
	NextColorIndex int
}

// Len returns the number of segments.
func (s State) Len() int {
	return len(s.Segments)
}

// Labels returns the segment labels in insertion order.
func (s State) Labels() []string {
	labels := make([]string, len(s.Segments))
	for i, seg := range s.Segments {
		labels[i] = seg.Label
	}
	return labels
}

// Clone returns a copy that does not share the segment slice.
func (s State) Clone() State {
	segs := make([]Segment, len(s.Segments))
	copy(segs, s.Segments)
	return State{Segments: segs, NextColorIndex: s.NextColorIndex}
}
