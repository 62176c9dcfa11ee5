package blend

import (
	"math"

	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// epsilon is the smallest positive float32: any non-zero source alpha
// takes part in the alpha floor.
const epsilon = math.SmallestNonzeroFloat32

// Composite draws a over b after scaling their alphas by ax and ay.
//
// When floor is set and both source pixels carry alpha, the result alpha
// is raised to at least Aa*Ba. Weighting both frames by less than one
// leaves two opaque sources partially transparent in the middle of the
// window, which shows as a flicker at the seam. The colour is computed
// before the floor is applied.
//
// A zero result alpha yields transparent black.
func Composite(a, b pixbuf.RGBA, ax, ay float32, floor bool) pixbuf.RGBA {
	wa := a.A * ax
	wb := b.A * ay

	outA := (1-wa)*wb + wa
	if outA == 0 {
		return pixbuf.Transparent
	}
	kb := (1 - wa) * wb

	c := pixbuf.RGBA{
		R: (kb*b.R + wa*a.R) / outA,
		G: (kb*b.G + wa*a.G) / outA,
		B: (kb*b.B + wa*a.B) / outA,
		A: outA,
	}

	if floor && a.A >= epsilon && b.A >= epsilon {
		c.A = max(c.A, a.A*b.A)
	}
	return c
}

// Over draws a over b with their native alphas. A fully opaque a replaces
// b and a fully transparent a leaves b untouched, bit for bit.
func Over(a, b pixbuf.RGBA) pixbuf.RGBA {
	switch {
	case a.A >= 1:
		return a
	case a.A <= 0:
		return b
	}
	return Composite(a, b, 1, 1, false)
}
