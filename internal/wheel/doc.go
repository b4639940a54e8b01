// Package wheel implements the prize wheel controller.
//
// A [Widget] owns the ordered list of named segments, the color cursor
// into a fixed [Palette], and the spin session. It mediates between user
// input (add, remove, spin) and a drawable [Engine] that renders the
// segments and runs the spin animation.
//
// # Modes
//
// The widget is either idle (spin trigger enabled) or spinning (spin
// trigger disabled):
//
//	idle --RequestSpin--> spinning --completion--> idle
//
// Add and remove are rejected with [ErrSpinInProgress] while spinning so
// the winner reported by the engine always exists in the segment list.
//
// # Validation
//
// All failures are local validation errors. Each one is reported to the
// user through [Controls.Warn] and returned as a sentinel error
// ([ErrTooFewSegments], [ErrEmptyName], [ErrLastSegment]); state is never
// modified on failure.
package wheel
