// Package alpha recovers transparency from renders of the same frame
// against different solid backgrounds.
//
// An opaque surface renders identically on every background, while a fully
// transparent pixel shows the background unchanged. For a straight colour F
// with coverage a composited over background K the render is
// F*a + K*(1-a), so the white-minus-black difference of each channel is
// 1-a. The smallest difference across channels is taken as the occlusion.
package alpha

import (
	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// Limit is the recovered alpha at or below which a pixel is treated as
// fully transparent. Dividing by smaller alphas blows colours up.
const Limit = 1.0 / 255.0

// Params controls the low-alpha smoothing post-process.
type Params struct {
	// Smooth enables damping of alphas at or below SmoothLimit.
	Smooth bool
	// SmoothLimit is the alpha threshold, nominally in [0.1, 0.5].
	SmoothLimit float32
	// SmoothDamp scales the reduction, nominally in [0.1, 1.0].
	SmoothDamp float32
	// BatchSize is the parallel-for batch size; 0 selects the default.
	BatchSize int
}

// Recover reconstructs straight colour and alpha from a black-background
// and a white-background render. Inputs are read-only; the result is a new
// buffer in the colour space of black.
func Recover(pool *parallel.WorkerPool, black, white *pixbuf.Buffer, p Params) (*pixbuf.Buffer, error) {
	if err := pixbuf.CheckSameSize(black, white); err != nil {
		return nil, err
	}
	out := pixbuf.NewLike(black)
	return out, RecoverInto(pool, out, black, white, p)
}

// RecoverInto is Recover writing into dst, which must match the inputs'
// size. dst takes the colour space of black.
func RecoverInto(pool *parallel.WorkerPool, dst, black, white *pixbuf.Buffer, p Params) error {
	if err := pixbuf.CheckSameSize(dst, black, white); err != nil {
		return err
	}
	a, b := black.Pix, white.Pix
	pool.For(len(dst.Pix), p.BatchSize, func(start, end int) {
		for i := start; i < end; i++ {
			k, w := a[i], b[i]
			alpha := 1 - min(w.R-k.R, w.G-k.G, w.B-k.B)
			dst.Pix[i] = resolve(k, alpha, p)
		}
	})
	dst.SetSpace(black.Space())
	return nil
}

// resolve turns the black render and a recovered alpha into the output
// pixel: transparent below Limit, otherwise un-premultiplied and smoothed.
func resolve(k pixbuf.RGBA, alpha float32, p Params) pixbuf.RGBA {
	if alpha <= Limit {
		return pixbuf.Transparent
	}
	c := pixbuf.RGBA{R: k.R / alpha, G: k.G / alpha, B: k.B / alpha, A: alpha}
	if p.Smooth && alpha <= p.SmoothLimit {
		c.A = Smooth(alpha, p.SmoothLimit, p.SmoothDamp)
	}
	return c
}

// Smooth lowers an alpha below limit in proportion to its distance from
// limit: alphas just under the limit barely move, faint halos vanish.
// Alphas above limit are returned unchanged.
func Smooth(alpha, limit, damp float32) float32 {
	if alpha > limit {
		return alpha
	}
	v := alpha - (limit-alpha)*damp
	return max(0, min(v, 1))
}

// Copy returns the black render unchanged, for captures that keep their
// background.
func Copy(black *pixbuf.Buffer) (*pixbuf.Buffer, error) {
	if black == nil {
		return nil, pixbuf.ErrNilBuffer
	}
	return black.Clone(), nil
}
