package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/gogpu/alphaloop"
)

// configFlags binds every Config field to a flag.
type configFlags struct {
	cfg     alphaloop.Config
	loop    string
	capture string
	mask    string
	strict  bool
}

func newConfigFlags() *configFlags {
	return &configFlags{cfg: alphaloop.DefaultConfig()}
}

func (f *configFlags) register(fs *pflag.FlagSet) {
	c := &f.cfg
	fs.IntVar(&c.FrameRate, "fps", c.FrameRate, "capture frame rate (even)")
	fs.IntVar(&c.Duration, "duration", c.Duration, "loop duration in seconds")
	fs.StringVar(&f.loop, "loop", c.Loop.String(),
		"transition: off, standard, standard-normalized, custom, custom-normalized, overlap")
	fs.IntVar(&c.TransitionFrames, "transition", c.TransitionFrames, "transition frames (even)")
	fs.Float32Var(&c.TransitionMultiplier, "multiplier", c.TransitionMultiplier, "alpha boost of the custom transitions [0.5, 1.5]")
	fs.StringVar(&f.capture, "capture", c.Capture.String(), "capture mode: transparent or opaque")
	fs.BoolVar(&c.AlphaSmooth, "smooth", c.AlphaSmooth, "damp low alphas")
	fs.Float32Var(&c.AlphaSmoothLimit, "smooth-limit", c.AlphaSmoothLimit, "alpha smoothing threshold [0.1, 0.5]")
	fs.Float32Var(&c.AlphaSmoothDamp, "smooth-damp", c.AlphaSmoothDamp, "alpha smoothing strength [0.1, 1.0]")
	fs.BoolVar(&c.RGBExtraTest, "rgb", c.RGBExtraTest, "use the red, green and blue captures")
	fs.StringVar(&f.mask, "mask-mode", c.Mask.String(), "mask: off, input or output")
	fs.BoolVar(&c.ConvertLinearToGamma, "gamma", c.ConvertLinearToGamma, "encode output as sRGB")
	fs.IntVar(&c.Workers, "workers", c.Workers, "pixel workers (0 = all CPUs)")
	fs.IntVar(&c.BatchSize, "batch", c.BatchSize, "pixels per parallel batch (0 = default)")
	fs.BoolVar(&f.strict, "strict", false, "reject out-of-range values instead of correcting them")
}

// config parses the enum flags and returns the validated configuration.
func (f *configFlags) config() (alphaloop.Config, error) {
	c := f.cfg
	var err error
	if c.Loop, err = alphaloop.ParseVariant(f.loop); err != nil {
		return c, fmt.Errorf("--loop: %w", err)
	}
	if c.Capture, err = alphaloop.ParseCaptureMode(f.capture); err != nil {
		return c, fmt.Errorf("--capture: %w", err)
	}
	if c.Mask, err = alphaloop.ParseMaskMode(f.mask); err != nil {
		return c, fmt.Errorf("--mask-mode: %w", err)
	}
	if !f.strict {
		c = c.Sanitize()
	}
	return c, c.Validate()
}
