package engine

import (
	"math/rand/v2"
	"time"

	"github.com/raphi011/spinelli/internal/wheel"
)

// Instant is a headless engine that picks a winner as soon as a spin
// starts. It is used for non-interactive picks.
type Instant struct {
	segments []wheel.Segment
	rand     *rand.Rand
	redraws  int
}

// NewInstant creates a headless engine holding a copy of segments. A nil
// source seeds from the clock.
func NewInstant(segments []wheel.Segment, r *rand.Rand) *Instant {
	if r == nil {
		r = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	return &Instant{segments: append([]wheel.Segment(nil), segments...), rand: r}
}

func (e *Instant) Redraw() { e.redraws++ }

func (e *Instant) AppendSegment(seg wheel.Segment) {
	e.segments = append(e.segments, seg)
}

func (e *Instant) RemoveLastSegment() {
	if len(e.segments) > 0 {
		e.segments = e.segments[:len(e.segments)-1]
	}
}

// StartAnimation completes immediately with a uniformly chosen segment.
func (e *Instant) StartAnimation(onComplete func(wheel.Segment)) {
	if len(e.segments) == 0 {
		onComplete(wheel.Segment{})
		return
	}
	onComplete(e.segments[e.rand.IntN(len(e.segments))])
}
