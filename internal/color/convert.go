package color

import colorful "github.com/lucasb-eyer/go-colorful"

// SRGBToLinear converts an sRGB component to linear (EOTF).
// Input is clamped to [0,1].
func SRGBToLinear(s float32) float32 {
	r, _, _ := colorful.Color{R: clamp01(s)}.LinearRgb()
	return float32(r)
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Input is clamped to [0,1].
func LinearToSRGB(l float32) float32 {
	return float32(colorful.LinearRgb(clamp01(l), 0, 0).R)
}

// LinearToSRGB3 converts three linear components at once.
func LinearToSRGB3(r, g, b float32) (float32, float32, float32) {
	c := colorful.LinearRgb(clamp01(r), clamp01(g), clamp01(b)).Clamped()
	return float32(c.R), float32(c.G), float32(c.B)
}

// SRGBToLinear3 converts three sRGB components at once.
func SRGBToLinear3(r, g, b float32) (float32, float32, float32) {
	lr, lg, lb := colorful.Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)}.LinearRgb()
	return float32(lr), float32(lg), float32(lb)
}

// Luminance returns the Rec. 709 relative luminance of linear RGB.
func Luminance(r, g, b float32) float32 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func clamp01(v float32) float64 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return float64(v)
}
