// Package blend implements the loop transition kernels: five ways to blend
// a frame from the end of a capture (A) into the matching frame from the
// start of the next pass (B).
//
// Colours are straight (non-premultiplied). Every variant is the "over"
// operator of A on B; the variants only differ in the weights applied to
// the two source alphas and in whether the result alpha is floored.
package blend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned for an unrecognised transition variant.
var ErrUnknownVariant = errors.New("blend: unknown transition variant")

// Variant selects the transition algorithm.
type Variant uint8

const (
	// Off disables the loop transition.
	Off Variant = iota
	// Standard weights A by t and B by 1-t.
	Standard
	// StandardNormalized scales (t, 1-t) to unit length, lifting the middle
	// of the transition.
	StandardNormalized
	// Custom multiplies (t, 1-t) by a user factor, clamped to [0,1].
	Custom
	// CustomNormalized applies the user factor to the unit-length weights.
	CustomNormalized
	// Overlap draws A over B with their native alphas.
	Overlap
)

var variantNames = [...]string{
	Off:                "off",
	Standard:           "standard",
	StandardNormalized: "standard-normalized",
	Custom:             "custom",
	CustomNormalized:   "custom-normalized",
	Overlap:            "overlap",
}

// String returns the variant name.
func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Valid reports whether v is a known variant (including Off).
func (v Variant) Valid() bool {
	return int(v) < len(variantNames)
}

// UsesMultiplier reports whether the variant reads Params.Multiplier.
func (v Variant) UsesMultiplier() bool {
	return v == Custom || v == CustomNormalized
}

// ParseVariant parses a variant name as produced by String.
// Underscores and case are ignored.
func ParseVariant(s string) (Variant, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return Off, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Variants lists every transition algorithm, excluding Off.
func Variants() []Variant {
	return []Variant{Standard, StandardNormalized, Custom, CustomNormalized, Overlap}
}
