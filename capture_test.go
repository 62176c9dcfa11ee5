package alphaloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackgrounds(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []Background{Black, White}, Backgrounds(cfg))

	cfg.RGBExtraTest = true
	assert.Equal(t, []Background{Black, White, Red, Green, Blue}, Backgrounds(cfg))

	cfg.Capture = CaptureOpaque
	assert.Equal(t, []Background{Black}, Backgrounds(cfg))
}

func TestBackgroundColor(t *testing.T) {
	assert.Equal(t, RGBA{A: 1}, Black.Color())
	assert.Equal(t, RGBA{R: 1, G: 1, B: 1, A: 1}, White.Color())
	assert.Equal(t, RGBA{G: 1, A: 1}, Green.Color())
}

func TestBackgroundNames(t *testing.T) {
	want := []string{"black", "white", "red", "green", "blue"}
	for i, bg := range []Background{Black, White, Red, Green, Blue} {
		assert.Equal(t, want[i], bg.String())
	}
	assert.Equal(t, "Background(9)", Background(9).String())
	assert.Equal(t, "opaque", CaptureOpaque.String())
	assert.Equal(t, "output", MaskOnOutput.String())
}

func TestCaptureSetGetSet(t *testing.T) {
	var s CaptureSet
	bufs := make(map[Background]*PixelBuffer)
	for _, bg := range []Background{Black, White, Red, Green, Blue} {
		b, err := NewPixelBuffer(1, 1)
		require.NoError(t, err)
		bufs[bg] = b
		s.Set(bg, b)
	}
	for bg, b := range bufs {
		assert.Same(t, b, s.Get(bg), bg.String())
	}
	assert.Len(t, s.Buffers(), 5)
	assert.Nil(t, s.Get(Background(42)))

	cfg := DefaultConfig()
	cfg.RGBExtraTest = true
	require.NoError(t, s.Validate(cfg))

	s.Red = nil
	assert.ErrorIs(t, s.Validate(cfg), ErrMissingCapture)
	assert.Len(t, s.Buffers(), 4)
}
