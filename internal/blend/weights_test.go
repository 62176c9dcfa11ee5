package blend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		index, total int
		want         float32
	}{
		{0, 10, 1.0 / 11},
		{9, 10, 10.0 / 11},
		{4, 9, 0.5},
		{20, 10, 1},
		{0, -1, 0},
	}
	for _, tt := range tests {
		got := Params{Index: tt.index, Total: tt.total}.Progress()
		assert.InDelta(t, tt.want, got, 1e-6, "Progress(%d/%d)", tt.index, tt.total)
	}
}

func TestWeights(t *testing.T) {
	half := Params{Index: 4, Total: 9, Multiplier: 1.15}
	late := Params{Index: 9, Total: 10, Multiplier: 1.5}
	s := float32(math.Sqrt2 / 2)

	tests := []struct {
		name   string
		v      Variant
		p      Params
		ax, ay float32
	}{
		{"standard", Standard, half, 0.5, 0.5},
		{"standard normalized", StandardNormalized, half, s, s},
		{"custom", Custom, half, 0.575, 0.575},
		{"custom clamps", Custom, late, 1, 1.5 / 11},
		{"custom normalized", CustomNormalized, half, s * 1.15, s * 1.15},
		{"custom normalized clamps", CustomNormalized, Params{Index: 4, Total: 9, Multiplier: 1.5}, 1, 1},
		{"overlap", Overlap, half, 1, 1},
		{"off", Off, half, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ax, ay := Weights(tt.v, tt.p)
			assert.InDelta(t, tt.ax, ax, 1e-5)
			assert.InDelta(t, tt.ay, ay, 1e-5)
		})
	}
}

func TestNormalizedWeightsHaveUnitLength(t *testing.T) {
	for i := range 10 {
		ax, ay := Weights(StandardNormalized, Params{Index: i, Total: 10})
		assert.InDelta(t, 1, ax*ax+ay*ay, 1e-5, "index %d", i)
	}
}

func TestCustomNormalizedWithUnitMultiplier(t *testing.T) {
	for i := range 8 {
		p := Params{Index: i, Total: 8, Multiplier: 1}
		sx, sy := Weights(StandardNormalized, p)
		cx, cy := Weights(CustomNormalized, p)
		assert.Equal(t, sx, cx, "index %d", i)
		assert.Equal(t, sy, cy, "index %d", i)
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range append(Variants(), Off) {
		got, err := ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	got, err := ParseVariant(" Custom_Normalized ")
	require.NoError(t, err)
	assert.Equal(t, CustomNormalized, got)

	_, err = ParseVariant("crossfade")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestVariantString(t *testing.T) {
	assert.False(t, Variant(42).Valid())
	assert.Equal(t, "Variant(42)", Variant(42).String())
	assert.True(t, Custom.UsesMultiplier())
	assert.False(t, Standard.UsesMultiplier())
}
