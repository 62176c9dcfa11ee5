// Package loop turns a captured frame sequence into a seamless loop.
//
// The capture holds N frames. The first half (A) ends with content the loop
// must flow into, the second half (B) ends with the transition window. The
// window of B is blended into the head of A so that the reassembled
// sequence plays back-to-back with itself without a visible seam:
//
//	A: |a0 .. aT-1|aT ........ ah-1|
//	B: |b0 ........ bh-T-1|bh-T .. bh-1|
//	out: b0 .. bh-T-1, blend(a0,bh-T) .. blend(aT-1,bh-1), aT .. ah-1
package loop

import (
	"errors"
	"fmt"
)

// State is the assembler's position in the assembly sequence.
type State uint8

const (
	// Buffering accepts frames through Push.
	Buffering State = iota
	// SplitHalves holds the two halves, ready to blend.
	SplitHalves
	// Transitioning holds the blended window, ready to reassemble.
	Transitioning
	// Reassembled is terminal; the output sequence is available.
	Reassembled
)

var stateNames = [...]string{"buffering", "split", "transitioning", "reassembled"}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

var (
	// ErrState is returned when a step is called out of order.
	ErrState = errors.New("loop: step called out of order")

	// ErrSettings is returned for a transition length below 2 or an
	// unusable variant.
	ErrSettings = errors.New("loop: invalid transition settings")

	// ErrTooFewFrames is returned when a half is shorter than the
	// transition window.
	ErrTooFewFrames = errors.New("loop: not enough frames for transition")
)

func stateError(step string, got State) error {
	return fmt.Errorf("%w: %s in state %v", ErrState, step, got)
}
