// Package color provides the colour space tag and sRGB transfer functions
// used by the pixel kernels.
package color

// ColorSpace identifies how the RGB channels of a buffer are encoded.
// Alpha is always linear (never gamma-encoded).
type ColorSpace uint8

const (
	// ColorSpaceLinear represents linear RGB, as produced by a renderer
	// working in linear space.
	ColorSpaceLinear ColorSpace = iota
	// ColorSpaceSRGB represents gamma-encoded sRGB, as stored in PNG files.
	ColorSpaceSRGB
)

// String returns the colour space name.
func (s ColorSpace) String() string {
	switch s {
	case ColorSpaceLinear:
		return "linear"
	case ColorSpaceSRGB:
		return "srgb"
	default:
		return "unknown"
	}
}
