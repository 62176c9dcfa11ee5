package blend

import (
	"fmt"

	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// Blend produces one transition frame from a (end of the capture) and b
// (start of the capture) with the selected variant. The inputs are
// read-only and must share dimensions.
func Blend(pool *parallel.WorkerPool, v Variant, a, b *pixbuf.Buffer, p Params) (*pixbuf.Buffer, error) {
	if err := pixbuf.CheckSameSize(a, b); err != nil {
		return nil, err
	}
	out := pixbuf.NewLike(a)
	if err := BlendInto(pool, out, v, a, b, p); err != nil {
		return nil, err
	}
	return out, nil
}

// BlendInto is Blend writing into dst. dst may not alias a or b.
func BlendInto(pool *parallel.WorkerPool, dst *pixbuf.Buffer, v Variant, a, b *pixbuf.Buffer, p Params) error {
	if v == Off || !v.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownVariant, v)
	}
	if err := pixbuf.CheckSameSize(dst, a, b); err != nil {
		return err
	}
	pa, pb := a.Pix, b.Pix
	dst.SetSpace(a.Space())

	if v == Overlap {
		pool.For(len(dst.Pix), p.BatchSize, func(start, end int) {
			for i := start; i < end; i++ {
				dst.Pix[i] = Over(pa[i], pb[i])
			}
		})
		return nil
	}

	ax, ay := Weights(v, p)
	pool.For(len(dst.Pix), p.BatchSize, func(start, end int) {
		for i := start; i < end; i++ {
			dst.Pix[i] = Composite(pa[i], pb[i], ax, ay, true)
		}
	})
	return nil
}
