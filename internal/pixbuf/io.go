package pixbuf

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedDepth is returned when a PNG bit depth other than 8 or 16 is requested.
	ErrUnsupportedDepth = errors.New("pixbuf: unsupported bit depth")
)

// Depth selects the bits per channel used when encoding.
type Depth int

const (
	// Depth8 encodes 8 bits per channel.
	Depth8 Depth = 8
	// Depth16 encodes 16 bits per channel.
	Depth16 Depth = 16
)

// Load reads a capture from path. Files with the raw extension are decoded
// with DecodeRaw, everything else through the registered image decoders
// (PNG, JPEG, BMP, TIFF, WebP).
func Load(path string) (*Buffer, error) {
	if strings.EqualFold(filepath.Ext(path), RawExt) {
		return LoadRaw(path)
	}
	return LoadImage(path)
}

// LoadImage decodes an image file into a buffer.
func LoadImage(path string) (*Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("pixbuf: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("pixbuf: decode: %w", err)
	}
	return FromImage(img)
}

// EncodePNG encodes the buffer as PNG with the given depth.
func (b *Buffer) EncodePNG(w io.Writer, depth Depth) error {
	var img image.Image
	switch depth {
	case Depth8:
		img = b.ToNRGBA()
	case Depth16:
		img = b.ToNRGBA64()
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("pixbuf: encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the buffer to a PNG file.
func (b *Buffer) SavePNG(path string, depth Depth) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("pixbuf: create file: %w", err)
	}

	if err := b.EncodePNG(f, depth); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
