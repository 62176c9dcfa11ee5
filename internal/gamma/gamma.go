// Package gamma converts frame buffers between linear light and sRGB
// gamma encoding.
package gamma

import (
	"github.com/gogpu/alphaloop/internal/color"
	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// LinearToGamma returns buf encoded with the sRGB transfer curve. Alpha is
// copied unchanged and colour results are clamped to [0,1]. A buffer that
// is already gamma encoded is returned as a clone.
func LinearToGamma(pool *parallel.WorkerPool, buf *pixbuf.Buffer, batch int) (*pixbuf.Buffer, error) {
	return convert(pool, buf, batch, color.ColorSpaceSRGB, color.LinearToSRGB3)
}

// GammaToLinear is the inverse of LinearToGamma.
func GammaToLinear(pool *parallel.WorkerPool, buf *pixbuf.Buffer, batch int) (*pixbuf.Buffer, error) {
	return convert(pool, buf, batch, color.ColorSpaceLinear, color.SRGBToLinear3)
}

// LinearToGammaInto is LinearToGamma writing into dst. dst may be buf.
func LinearToGammaInto(pool *parallel.WorkerPool, dst, buf *pixbuf.Buffer, batch int) error {
	return convertInto(pool, dst, buf, batch, color.ColorSpaceSRGB, color.LinearToSRGB3)
}

// GammaToLinearInto is GammaToLinear writing into dst. dst may be buf.
func GammaToLinearInto(pool *parallel.WorkerPool, dst, buf *pixbuf.Buffer, batch int) error {
	return convertInto(pool, dst, buf, batch, color.ColorSpaceLinear, color.SRGBToLinear3)
}

type transfer func(r, g, b float32) (float32, float32, float32)

func convert(pool *parallel.WorkerPool, buf *pixbuf.Buffer, batch int, target color.ColorSpace, fn transfer) (*pixbuf.Buffer, error) {
	if buf == nil {
		return nil, pixbuf.ErrNilBuffer
	}
	out := pixbuf.NewLike(buf)
	if err := convertInto(pool, out, buf, batch, target, fn); err != nil {
		return nil, err
	}
	return out, nil
}

func convertInto(pool *parallel.WorkerPool, dst, buf *pixbuf.Buffer, batch int, target color.ColorSpace, fn transfer) error {
	if dst == nil || buf == nil {
		return pixbuf.ErrNilBuffer
	}
	if err := pixbuf.CheckSameSize(dst, buf); err != nil {
		return err
	}
	if buf.Space() == target {
		if dst != buf {
			copy(dst.Pix, buf.Pix)
		}
		dst.SetSpace(target)
		return nil
	}
	pool.For(len(dst.Pix), batch, func(start, end int) {
		for i := start; i < end; i++ {
			p := buf.Pix[i]
			r, g, b := fn(p.R, p.G, p.B)
			dst.Pix[i] = pixbuf.RGBA{R: r, G: g, B: b, A: p.A}
		}
	})
	dst.SetSpace(target)
	return nil
}
