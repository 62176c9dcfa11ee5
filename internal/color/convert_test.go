package color

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSRGBToLinearEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"mid gray", 0.5, float32(math.Pow((0.5+0.055)/1.055, 2.4))},
		{"below range", -0.5, 0.0},
		{"above range", 3.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SRGBToLinear(tt.input), 1e-5)
		})
	}
}

func TestLinearToSRGBEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.0031308, 0.0031308 * 12.92},
		{"mid gray linear", 0.21404, float32(1.055*math.Pow(0.21404, 1.0/2.4) - 0.055)},
		{"hdr overshoot", 4.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LinearToSRGB(tt.input), 1e-5)
		})
	}
}

// Maximum error should be less than 1/255 to preserve 8-bit precision.
func TestRoundTripSRGBLinear(t *testing.T) {
	const maxError = 1.0 / 255.0

	for i := 0; i <= 255; i++ {
		srgb := float32(i) / 255.0
		assert.InDelta(t, srgb, LinearToSRGB(SRGBToLinear(srgb)), maxError, "round trip of %d/255", i)
	}
}

func TestLinearToSRGBMonotonic(t *testing.T) {
	prev := LinearToSRGB(0)
	for i := 1; i <= 1000; i++ {
		cur := LinearToSRGB(float32(i) / 1000)
		require.GreaterOrEqual(t, cur, prev, "LinearToSRGB at %d/1000", i)
		prev = cur
	}
}

func TestThreeChannelMatchesScalar(t *testing.T) {
	r, g, b := LinearToSRGB3(0.1, 0.5, 0.9)
	assert.InDelta(t, LinearToSRGB(0.1), r, 1e-6)
	assert.InDelta(t, LinearToSRGB(0.5), g, 1e-6)
	assert.InDelta(t, LinearToSRGB(0.9), b, 1e-6)

	lr, lg, lb := SRGBToLinear3(r, g, b)
	assert.InDelta(t, 0.1, lr, 1e-4)
	assert.InDelta(t, 0.5, lg, 1e-4)
	assert.InDelta(t, 0.9, lb, 1e-4)
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 1, Luminance(1, 1, 1), 1e-6)
	assert.Zero(t, Luminance(0, 0, 0))
}

func TestColorSpaceString(t *testing.T) {
	assert.Equal(t, "linear", ColorSpaceLinear.String())
	assert.Equal(t, "srgb", ColorSpaceSRGB.String())
	assert.Equal(t, "unknown", ColorSpace(9).String())
}
