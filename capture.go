package alphaloop

import (
	"context"
	"fmt"

	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// Background identifies the solid background a frame was rendered on.
type Background uint8

// Backgrounds in rendering order.
const (
	// Black is the primary render. Opaque captures use it as is.
	Black Background = iota
	// White pairs with Black to recover alpha.
	White
	// Red isolates the red channel for the extended alpha test.
	Red
	// Green isolates the green channel for the extended alpha test.
	Green
	// Blue isolates the blue channel for the extended alpha test.
	Blue
)

var backgroundNames = [...]string{"black", "white", "red", "green", "blue"}

// String returns the lower-case name, which is also the capture
// subdirectory name.
func (b Background) String() string {
	if int(b) < len(backgroundNames) {
		return backgroundNames[b]
	}
	return fmt.Sprintf("Background(%d)", b)
}

// Color returns the opaque background colour.
func (b Background) Color() RGBA {
	switch b {
	case White:
		return RGBA{R: 1, G: 1, B: 1, A: 1}
	case Red:
		return RGBA{R: 1, A: 1}
	case Green:
		return RGBA{G: 1, A: 1}
	case Blue:
		return RGBA{B: 1, A: 1}
	}
	return RGBA{A: 1}
}

// Backgrounds returns the backgrounds a capture with cfg needs, in
// rendering order.
func Backgrounds(cfg Config) []Background {
	switch {
	case cfg.Capture == CaptureOpaque:
		return []Background{Black}
	case cfg.RGBExtraTest:
		return []Background{Black, White, Red, Green, Blue}
	}
	return []Background{Black, White}
}

// CaptureSet holds the renders of one frame instant, one per background.
// It is consumed by a single Process call.
type CaptureSet struct {
	Black, White, Red, Green, Blue *PixelBuffer
}

// Get returns the render for bg, or nil.
func (s *CaptureSet) Get(bg Background) *PixelBuffer {
	switch bg {
	case Black:
		return s.Black
	case White:
		return s.White
	case Red:
		return s.Red
	case Green:
		return s.Green
	case Blue:
		return s.Blue
	}
	return nil
}

// Set stores the render for bg.
func (s *CaptureSet) Set(bg Background, b *PixelBuffer) {
	switch bg {
	case Black:
		s.Black = b
	case White:
		s.White = b
	case Red:
		s.Red = b
	case Green:
		s.Green = b
	case Blue:
		s.Blue = b
	}
}

// Buffers returns the non-nil renders.
func (s *CaptureSet) Buffers() []*PixelBuffer {
	var out []*PixelBuffer
	for _, b := range []*PixelBuffer{s.Black, s.White, s.Red, s.Green, s.Blue} {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Validate checks that every background cfg needs is present and that all
// renders share one size.
func (s *CaptureSet) Validate(cfg Config) error {
	for _, bg := range Backgrounds(cfg) {
		if s.Get(bg) == nil {
			return fmt.Errorf("%w: %v", ErrMissingCapture, bg)
		}
	}
	bufs := s.Buffers()
	return pixbuf.CheckSameSize(bufs[0], bufs[1:]...)
}

// CaptureSource renders frames on demand.
type CaptureSource interface {
	// Capture returns the renders of frame, 0-based in capture order, on
	// the backgrounds listed by Backgrounds.
	Capture(ctx context.Context, frame int) (CaptureSet, error)
}

// MaskSource is implemented by capture sources that can render a mask.
// The mask is rendered once on a black background; lit pixels are inside.
type MaskSource interface {
	Mask(ctx context.Context) (*PixelBuffer, error)
}

// Exporter receives the finished frames in presentation order.
type Exporter interface {
	Export(ctx context.Context, frame int, buf *PixelBuffer) error
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(ctx context.Context, frame int, buf *PixelBuffer) error

// Export calls f.
func (f ExporterFunc) Export(ctx context.Context, frame int, buf *PixelBuffer) error {
	return f(ctx, frame, buf)
}
