package alphaloop

import (
	"github.com/gogpu/alphaloop/internal/blend"
	"github.com/gogpu/alphaloop/internal/color"
	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// PixelBuffer is a width×height frame of straight-alpha float32 RGBA.
type PixelBuffer = pixbuf.Buffer

// RGBA is one straight-alpha pixel.
type RGBA = pixbuf.RGBA

// ColorSpace tells whether a buffer holds linear or gamma encoded colour.
type ColorSpace = color.ColorSpace

// Colour spaces.
const (
	ColorSpaceLinear = color.ColorSpaceLinear
	ColorSpaceSRGB   = color.ColorSpaceSRGB
)

// Variant selects the loop transition.
type Variant = blend.Variant

// Loop transitions. LoopOff disables looping.
const (
	LoopOff                      = blend.Off
	TransitionStandard           = blend.Standard
	TransitionStandardNormalized = blend.StandardNormalized
	TransitionCustom             = blend.Custom
	TransitionCustomNormalized   = blend.CustomNormalized
	TransitionOverlap            = blend.Overlap
)

// ParseVariant parses a transition name such as "custom-normalized".
func ParseVariant(s string) (Variant, error) { return blend.ParseVariant(s) }

// NewPixelBuffer allocates a cleared frame.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	return pixbuf.New(width, height)
}

// WorkerPool runs per-pixel kernels in parallel batches.
type WorkerPool = parallel.WorkerPool

// NewWorkerPool starts a pool of n workers; n <= 0 uses GOMAXPROCS.
func NewWorkerPool(n int) *WorkerPool { return parallel.NewWorkerPool(n) }

// BufferPool recycles frames of identical size.
type BufferPool = pixbuf.Pool

// NewBufferPool returns a pool keeping at most maxPerSize frames per size,
// 0 for no limit.
func NewBufferPool(maxPerSize int) *BufferPool { return pixbuf.NewPool(maxPerSize) }
