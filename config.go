package alphaloop

import (
	"fmt"
	"strings"
)

// CaptureMode selects how frames are captured.
type CaptureMode uint8

const (
	// CaptureTransparent renders on several backgrounds and recovers alpha.
	CaptureTransparent CaptureMode = iota
	// CaptureOpaque keeps the black render as is.
	CaptureOpaque
)

var captureModeNames = [...]string{"transparent", "opaque"}

// String returns "transparent" or "opaque".
func (m CaptureMode) String() string {
	if int(m) < len(captureModeNames) {
		return captureModeNames[m]
	}
	return fmt.Sprintf("CaptureMode(%d)", m)
}

// ParseCaptureMode parses "transparent" or "opaque".
func ParseCaptureMode(s string) (CaptureMode, error) {
	return parseEnum[CaptureMode](s, captureModeNames[:], "capture mode")
}

// MaskMode selects where the mask is applied.
type MaskMode uint8

const (
	// MaskOff disables masking.
	MaskOff MaskMode = iota
	// MaskOnInput masks each recovered frame before loop assembly.
	// Transition frames then fade across the mask edge.
	MaskOnInput
	// MaskOnOutput masks the assembled loop.
	MaskOnOutput
)

var maskModeNames = [...]string{"off", "input", "output"}

// String returns "off", "input" or "output".
func (m MaskMode) String() string {
	if int(m) < len(maskModeNames) {
		return maskModeNames[m]
	}
	return fmt.Sprintf("MaskMode(%d)", m)
}

// ParseMaskMode parses "off", "input" or "output".
func ParseMaskMode(s string) (MaskMode, error) {
	return parseEnum[MaskMode](s, maskModeNames[:], "mask mode")
}

func parseEnum[T ~uint8](s string, names []string, what string) (T, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == name {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidConfiguration, what, s)
}

// Bounds of the tunable parameters.
const (
	MinTransitionMultiplier = 0.5
	MaxTransitionMultiplier = 1.5
	MinSmoothLimit          = 0.1
	MaxSmoothLimit          = 0.5
	MinSmoothDamp           = 0.1
	MaxSmoothDamp           = 1.0
)

// Config controls a capture session.
type Config struct {
	// FrameRate in frames per second. Must be even so the capture splits
	// into two equal halves.
	FrameRate int
	// Duration of the exported loop in seconds.
	Duration int

	// Loop selects the transition variant, LoopOff for none.
	Loop Variant
	// TransitionFrames is the transition window, even and within
	// [2, MaxTransitionFrames].
	TransitionFrames int
	// TransitionMultiplier boosts the alpha weights of the custom variants.
	TransitionMultiplier float32

	// Capture selects transparent (alpha recovery) or opaque capture.
	Capture CaptureMode

	// AlphaSmooth damps alphas at or below AlphaSmoothLimit by
	// AlphaSmoothDamp, removing faint halos left by post effects.
	AlphaSmooth      bool
	AlphaSmoothLimit float32
	AlphaSmoothDamp  float32

	// RGBExtraTest also captures pure red, green and blue backgrounds.
	RGBExtraTest bool

	// Mask selects whether the mask is applied before loop assembly,
	// after it, or not at all. The mask comes from a MaskSource.
	Mask MaskMode

	// ConvertLinearToGamma encodes the exported frames as sRGB.
	ConvertLinearToGamma bool

	// Workers sizes the pixel worker pool; 0 uses GOMAXPROCS.
	Workers int
	// BatchSize is the pixels per parallel batch; 0 uses the default.
	BatchSize int
}

// DefaultConfig returns the default settings: 30 fps for one second, no
// loop, a 10 frame window with a 1.15 multiplier when looping, smoothing
// at 0.2/0.4 and gamma conversion on.
func DefaultConfig() Config {
	return Config{
		FrameRate:            30,
		Duration:             1,
		Loop:                 LoopOff,
		TransitionFrames:     10,
		TransitionMultiplier: 1.15,
		Capture:              CaptureTransparent,
		AlphaSmooth:          true,
		AlphaSmoothLimit:     0.2,
		AlphaSmoothDamp:      0.4,
		Mask:                 MaskOff,
		ConvertLinearToGamma: true,
	}
}

// Looping reports whether a transition is applied.
func (c Config) Looping() bool {
	return c.Loop != LoopOff && c.TransitionFrames >= 2
}

// MaxTransitionFrames returns the longest allowed window: half the loop,
// but never below 2.
func (c Config) MaxTransitionFrames() int {
	return max(2, c.FrameRate*c.Duration/2)
}

// Validate checks every field and returns an ErrInvalidConfiguration
// naming the first offending one.
func (c Config) Validate() error {
	switch {
	case c.FrameRate <= 0:
		return invalid("FrameRate", "must be positive, got %d", c.FrameRate)
	case c.FrameRate%2 != 0:
		return invalid("FrameRate", "must be even, got %d", c.FrameRate)
	case c.Duration <= 0:
		return invalid("Duration", "must be positive, got %d", c.Duration)
	case !c.Loop.Valid():
		return invalid("Loop", "unknown variant %d", uint8(c.Loop))
	case int(c.Capture) >= len(captureModeNames):
		return invalid("Capture", "unknown mode %d", uint8(c.Capture))
	case int(c.Mask) >= len(maskModeNames):
		return invalid("Mask", "unknown mode %d", uint8(c.Mask))
	case c.Workers < 0:
		return invalid("Workers", "must not be negative, got %d", c.Workers)
	case c.BatchSize < 0:
		return invalid("BatchSize", "must not be negative, got %d", c.BatchSize)
	}

	if c.Loop != LoopOff {
		maxT := c.MaxTransitionFrames()
		switch {
		case c.TransitionFrames < 2 || c.TransitionFrames > maxT:
			return invalid("TransitionFrames", "must be in [2, %d], got %d", maxT, c.TransitionFrames)
		case c.TransitionFrames%2 != 0:
			return invalid("TransitionFrames", "must be even, got %d", c.TransitionFrames)
		}
		if c.Loop.UsesMultiplier() && !inRange(c.TransitionMultiplier, MinTransitionMultiplier, MaxTransitionMultiplier) {
			return invalid("TransitionMultiplier", "must be in [%v, %v], got %v",
				MinTransitionMultiplier, MaxTransitionMultiplier, c.TransitionMultiplier)
		}
	}

	if c.Capture == CaptureTransparent && c.AlphaSmooth {
		if !inRange(c.AlphaSmoothLimit, MinSmoothLimit, MaxSmoothLimit) {
			return invalid("AlphaSmoothLimit", "must be in [%v, %v], got %v",
				MinSmoothLimit, MaxSmoothLimit, c.AlphaSmoothLimit)
		}
		if !inRange(c.AlphaSmoothDamp, MinSmoothDamp, MaxSmoothDamp) {
			return invalid("AlphaSmoothDamp", "must be in [%v, %v], got %v",
				MinSmoothDamp, MaxSmoothDamp, c.AlphaSmoothDamp)
		}
	}
	return nil
}

// Sanitize returns a copy with out-of-range values corrected the way an
// interactive capture tool would: an odd frame rate is raised by one, the
// window is clamped to [2, MaxTransitionFrames] and made even, and the
// tunables are clamped to their ranges. Each correction is logged at warn
// level. Unknown enum values are left for Validate to reject.
func (c Config) Sanitize() Config {
	log := Logger()
	fix := func(field string, from, to any) {
		log.Warn("alphaloop: corrected configuration", "field", field, "from", from, "to", to)
	}

	if c.FrameRate < 2 {
		fix("FrameRate", c.FrameRate, 2)
		c.FrameRate = 2
	} else if c.FrameRate%2 != 0 {
		fix("FrameRate", c.FrameRate, c.FrameRate+1)
		c.FrameRate++
	}
	if c.Duration < 1 {
		fix("Duration", c.Duration, 1)
		c.Duration = 1
	}

	if c.Loop != LoopOff {
		if t := evenTransition(c.TransitionFrames, c.MaxTransitionFrames()); t != c.TransitionFrames {
			fix("TransitionFrames", c.TransitionFrames, t)
			c.TransitionFrames = t
		}
	}

	clampField := func(field string, v *float32, lo, hi float32) {
		if n := min(max(*v, lo), hi); n != *v {
			fix(field, *v, n)
			*v = n
		}
	}
	clampField("TransitionMultiplier", &c.TransitionMultiplier, MinTransitionMultiplier, MaxTransitionMultiplier)
	clampField("AlphaSmoothLimit", &c.AlphaSmoothLimit, MinSmoothLimit, MaxSmoothLimit)
	clampField("AlphaSmoothDamp", &c.AlphaSmoothDamp, MinSmoothDamp, MaxSmoothDamp)

	c.Workers = max(c.Workers, 0)
	c.BatchSize = max(c.BatchSize, 0)
	return c
}

// evenTransition clamps t to [2, maxT] and rounds an odd result up, or
// down when rounding up would pass maxT.
func evenTransition(t, maxT int) int {
	t = min(max(t, 2), maxT)
	if t%2 != 0 {
		if t+1 <= maxT {
			t++
		} else {
			t--
		}
	}
	return t
}

// FramePlan is the number of frames a session captures and exports.
type FramePlan struct {
	// TotalFrames is the number of frames to capture.
	TotalFrames int
	// TransitionFrames is the window length, 0 without a loop.
	TransitionFrames int
	// OutputFrames is the number of frames exported.
	OutputFrames int
	// Loop reports whether a transition is applied.
	Loop bool
}

// Plan validates c and computes its frame plan. A looping capture records
// the transition window on top of the loop and folds it back in.
func (c Config) Plan() (FramePlan, error) {
	if err := c.Validate(); err != nil {
		return FramePlan{}, err
	}
	frames := c.FrameRate * c.Duration
	if !c.Looping() {
		return FramePlan{TotalFrames: frames, OutputFrames: frames}, nil
	}
	return FramePlan{
		TotalFrames:      frames + c.TransitionFrames,
		TransitionFrames: c.TransitionFrames,
		OutputFrames:     frames,
		Loop:             true,
	}, nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfiguration, field, fmt.Sprintf(format, args...))
}

func inRange(v, lo, hi float32) bool {
	return v >= lo && v <= hi
}
