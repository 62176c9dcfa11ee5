// Package pixbuf provides the floating-point RGBA pixel buffer shared by
// every kernel of the pipeline.
//
// Pixels are stored row-major with straight (non-premultiplied) alpha.
// A Buffer has a single owner at a time. Kernels read their inputs and
// write either a new buffer or one the caller passes in, and a Pool
// recycles buffers once their owner releases them.
package pixbuf

import (
	"errors"
	"fmt"

	"github.com/gogpu/alphaloop/internal/color"
)

// MaxPixels bounds a single buffer allocation (16 bytes per pixel).
// 1<<28 pixels is 4 GiB, well beyond a 16K frame.
const MaxPixels = 1 << 28

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrAllocation is returned when a buffer would exceed MaxPixels.
	ErrAllocation = errors.New("pixbuf: allocation too large")

	// ErrDimensionMismatch is returned when kernel inputs differ in size.
	ErrDimensionMismatch = errors.New("pixbuf: dimension mismatch")

	// ErrNilBuffer is returned when a required buffer is missing.
	ErrNilBuffer = errors.New("pixbuf: nil buffer")
)

// RGBA is a single pixel with float32 components, nominally in [0,1].
type RGBA struct {
	R, G, B, A float32
}

// Transparent is fully transparent black.
var Transparent = RGBA{}

// Buffer is a width×height array of RGBA pixels.
type Buffer struct {
	width  int
	height int
	space  color.ColorSpace
	Pix    []RGBA
}

// New allocates a cleared buffer in linear colour space.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, MaxPixels)
	}
	return &Buffer{
		width:  width,
		height: height,
		Pix:    make([]RGBA, width*height),
	}, nil
}

// NewLike allocates a cleared buffer with the size and colour space of b.
func NewLike(b *Buffer) *Buffer {
	return &Buffer{
		width:  b.width,
		height: b.height,
		space:  b.space,
		Pix:    make([]RGBA, len(b.Pix)),
	}
}

// Filled allocates a buffer with every pixel set to c.
func Filled(width, height int, c RGBA) (*Buffer, error) {
	b, err := New(width, height)
	if err != nil {
		return nil, err
	}
	b.Fill(c)
	return b, nil
}

// Width returns the width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Buffer) Height() int { return b.height }

// Len returns the number of pixels.
func (b *Buffer) Len() int { return len(b.Pix) }

// Space returns the colour space of the RGB channels.
func (b *Buffer) Space() color.ColorSpace { return b.space }

// SetSpace tags the buffer with a colour space without converting pixels.
func (b *Buffer) SetSpace(s color.ColorSpace) { b.space = s }

// At returns the pixel at (x, y), or Transparent outside the bounds.
func (b *Buffer) At(x, y int) RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Transparent
	}
	return b.Pix[y*b.width+x]
}

// Set sets the pixel at (x, y). Coordinates outside the bounds are ignored.
func (b *Buffer) Set(x, y int, c RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.Pix[y*b.width+x] = c
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c RGBA) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// Clear sets every pixel to transparent black.
func (b *Buffer) Clear() {
	clear(b.Pix)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	c := NewLike(b)
	copy(c.Pix, b.Pix)
	return c
}

// SameSize reports whether o has the same dimensions as b.
func (b *Buffer) SameSize(o *Buffer) bool {
	return o != nil && b.width == o.width && b.height == o.height
}

// Equal reports whether both buffers hold identical pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if !b.SameSize(o) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Clamp clamps every channel to [0,1]. NaN becomes 0.
func (b *Buffer) Clamp() {
	for i, p := range b.Pix {
		b.Pix[i] = RGBA{clamp01(p.R), clamp01(p.G), clamp01(p.B), clamp01(p.A)}
	}
}

// CheckSameSize returns ErrDimensionMismatch unless every buffer matches
// the first one, and ErrNilBuffer if any is nil.
func CheckSameSize(first *Buffer, rest ...*Buffer) error {
	if first == nil {
		return ErrNilBuffer
	}
	for _, o := range rest {
		if o == nil {
			return ErrNilBuffer
		}
		if !first.SameSize(o) {
			return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
				first.width, first.height, o.width, o.height)
		}
	}
	return nil
}

// clamp01 maps NaN to 0 since NaN compares false.
func clamp01(v float32) float32 {
	if v > 0 {
		return min(v, 1)
	}
	return 0
}
