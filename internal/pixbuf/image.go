package pixbuf

import (
	"image"
	stdcolor "image/color"
)

// FromImage converts any image to a linear-tagged float buffer with
// straight alpha. 16-bit sources keep their full precision.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	b, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < b.height; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			row := src.Pix[off : off+b.width*4]
			dst := b.Pix[y*b.width : (y+1)*b.width]
			for x := range dst {
				dst[x] = RGBA{
					R: float32(row[x*4+0]) / 255,
					G: float32(row[x*4+1]) / 255,
					B: float32(row[x*4+2]) / 255,
					A: float32(row[x*4+3]) / 255,
				}
			}
		}
	default:
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				c := stdcolor.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(stdcolor.NRGBA64)
				b.Pix[y*b.width+x] = RGBA{
					R: float32(c.R) / 65535,
					G: float32(c.G) / 65535,
					B: float32(c.B) / 65535,
					A: float32(c.A) / 65535,
				}
			}
		}
	}
	return b, nil
}

// ToNRGBA quantizes the buffer to 8 bits per channel.
// Values are clamped to [0,1] and rounded.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, p := range b.Pix {
		o := i * 4
		img.Pix[o+0] = quantize8(p.R)
		img.Pix[o+1] = quantize8(p.G)
		img.Pix[o+2] = quantize8(p.B)
		img.Pix[o+3] = quantize8(p.A)
	}
	return img
}

// ToNRGBA64 quantizes the buffer to 16 bits per channel.
func (b *Buffer) ToNRGBA64() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, b.width, b.height))
	for i, p := range b.Pix {
		o := i * 8
		putU16(img.Pix[o+0:], quantize16(p.R))
		putU16(img.Pix[o+2:], quantize16(p.G))
		putU16(img.Pix[o+4:], quantize16(p.B))
		putU16(img.Pix[o+6:], quantize16(p.A))
	}
	return img
}

func quantize8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func quantize16(v float32) uint16 {
	return uint16(clamp01(v)*65535 + 0.5)
}

// putU16 stores big-endian, matching image.NRGBA64.Pix.
func putU16(p []byte, v uint16) {
	p[0] = byte(v >> 8)
	p[1] = byte(v)
}
