package alphaloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.FrameRate)
	assert.Equal(t, 10, cfg.TransitionFrames)
	assert.InDelta(t, 1.15, cfg.TransitionMultiplier, 1e-6)
	assert.False(t, cfg.Looping())
}

func TestValidate(t *testing.T) {
	looping := func(mod func(*Config)) Config {
		c := DefaultConfig()
		c.Loop = TransitionCustom
		mod(&c)
		return c
	}
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"zero fps", looping(func(c *Config) { c.FrameRate = 0 }), "FrameRate"},
		{"odd fps", looping(func(c *Config) { c.FrameRate = 25 }), "FrameRate"},
		{"zero duration", looping(func(c *Config) { c.Duration = 0 }), "Duration"},
		{"odd transition", looping(func(c *Config) { c.TransitionFrames = 7 }), "TransitionFrames"},
		{"short transition", looping(func(c *Config) { c.TransitionFrames = 0 }), "TransitionFrames"},
		{"long transition", looping(func(c *Config) { c.TransitionFrames = 16 }), "TransitionFrames"},
		{"low multiplier", looping(func(c *Config) { c.TransitionMultiplier = 0.4 }), "TransitionMultiplier"},
		{"high multiplier", looping(func(c *Config) { c.TransitionMultiplier = 1.6 }), "TransitionMultiplier"},
		{"smooth limit", looping(func(c *Config) { c.AlphaSmoothLimit = 0.6 }), "AlphaSmoothLimit"},
		{"smooth damp", looping(func(c *Config) { c.AlphaSmoothDamp = 0.05 }), "AlphaSmoothDamp"},
		{"variant", looping(func(c *Config) { c.Loop = Variant(99) }), "Loop"},
		{"mask", looping(func(c *Config) { c.Mask = MaskMode(7) }), "Mask"},
		{"capture", looping(func(c *Config) { c.Capture = CaptureMode(7) }), "Capture"},
		{"workers", looping(func(c *Config) { c.Workers = -1 }), "Workers"},
		{"batch", looping(func(c *Config) { c.BatchSize = -1 }), "BatchSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateIgnoresUnusedFields(t *testing.T) {
	c := DefaultConfig()
	c.TransitionFrames = 3
	c.TransitionMultiplier = 9
	assert.NoError(t, c.Validate(), "loop off ignores transition settings")

	c.Loop = TransitionStandard
	c.TransitionFrames = 4
	assert.NoError(t, c.Validate(), "standard ignores the multiplier")

	c.AlphaSmooth = false
	c.AlphaSmoothLimit = 0
	assert.NoError(t, c.Validate())
}

func TestMaxTransitionFrames(t *testing.T) {
	tests := []struct{ fps, dur, want int }{
		{30, 1, 15},
		{2, 1, 2},
		{24, 2, 24},
	}
	for _, tt := range tests {
		c := Config{FrameRate: tt.fps, Duration: tt.dur}
		assert.Equal(t, tt.want, c.MaxTransitionFrames(), "fps=%d dur=%d", tt.fps, tt.dur)
	}
}

func TestSanitize(t *testing.T) {
	c := DefaultConfig()
	c.FrameRate = 25
	c.Loop = TransitionCustom
	c.TransitionFrames = 40
	c.TransitionMultiplier = 3
	c.AlphaSmoothLimit = 0.01
	c.AlphaSmoothDamp = 2

	s := c.Sanitize()
	assert.Equal(t, 26, s.FrameRate)
	assert.Equal(t, 12, s.TransitionFrames, "13 is the max, odd, so it rounds down")
	assert.InDelta(t, MaxTransitionMultiplier, s.TransitionMultiplier, 1e-6)
	assert.InDelta(t, MinSmoothLimit, s.AlphaSmoothLimit, 1e-6)
	assert.InDelta(t, MaxSmoothDamp, s.AlphaSmoothDamp, 1e-6)
	require.NoError(t, s.Validate())
}

func TestEvenTransition(t *testing.T) {
	tests := []struct{ t, max, want int }{
		{0, 15, 2},
		{1, 15, 2},
		{7, 15, 8},
		{15, 15, 14},
		{20, 15, 14},
		{10, 15, 10},
		{5, 2, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, evenTransition(tt.t, tt.max), "evenTransition(%d, %d)", tt.t, tt.max)
	}
}

func TestPlan(t *testing.T) {
	c := DefaultConfig()
	plan, err := c.Plan()
	require.NoError(t, err)
	assert.Equal(t, FramePlan{TotalFrames: 30, OutputFrames: 30}, plan)

	c.Loop = TransitionStandard
	c.Duration = 2
	plan, err = c.Plan()
	require.NoError(t, err)
	assert.Equal(t, FramePlan{TotalFrames: 70, TransitionFrames: 10, OutputFrames: 60, Loop: true}, plan)
	assert.Equal(t, plan.TotalFrames-plan.TransitionFrames, plan.OutputFrames)

	c.FrameRate = 31
	_, err = c.Plan()
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestParseModes(t *testing.T) {
	m, err := ParseMaskMode(" Output ")
	require.NoError(t, err)
	assert.Equal(t, MaskOnOutput, m)
	assert.Equal(t, "input", MaskOnInput.String())

	cm, err := ParseCaptureMode("opaque")
	require.NoError(t, err)
	assert.Equal(t, CaptureOpaque, cm)

	_, err = ParseMaskMode("sideways")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	v, err := ParseVariant("Custom_Normalized")
	require.NoError(t, err)
	assert.Equal(t, TransitionCustomNormalized, v)
}
