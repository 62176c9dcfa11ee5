package alpha

import (
	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// RecoverRGB is Recover with three extra renders on pure red, green and
// blue backgrounds.
//
// Post effects such as bloom bleed the white background into dark or grey
// surfaces, which the black/white test then reads as translucent. A pure
// red background only lifts the red channel, so R.r-K.r isolates the red
// occlusion from the spill of the other channels; likewise for green and
// blue. The final alpha is the larger of the black/white estimate and the
// per-channel estimate, so a surface is never reported more transparent
// than its most reliable test says. The clamp and smoothing policy is the
// same as Recover.
func RecoverRGB(pool *parallel.WorkerPool, black, white, red, green, blue *pixbuf.Buffer, p Params) (*pixbuf.Buffer, error) {
	if err := pixbuf.CheckSameSize(black, white, red, green, blue); err != nil {
		return nil, err
	}
	out := pixbuf.NewLike(black)
	return out, RecoverRGBInto(pool, out, black, white, red, green, blue, p)
}

// RecoverRGBInto is RecoverRGB writing into dst.
func RecoverRGBInto(pool *parallel.WorkerPool, dst, black, white, red, green, blue *pixbuf.Buffer, p Params) error {
	if err := pixbuf.CheckSameSize(dst, black, white, red, green, blue); err != nil {
		return err
	}
	k, w, r, g, b := black.Pix, white.Pix, red.Pix, green.Pix, blue.Pix
	pool.For(len(dst.Pix), p.BatchSize, func(start, end int) {
		for i := start; i < end; i++ {
			ki := k[i]
			bw := 1 - min(w[i].R-ki.R, w[i].G-ki.G, w[i].B-ki.B)
			rgb := 1 - min(r[i].R-ki.R, g[i].G-ki.G, b[i].B-ki.B)
			dst.Pix[i] = resolve(ki, max(bw, rgb), p)
		}
	})
	dst.SetSpace(black.Space())
	return nil
}
