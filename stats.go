package alphaloop

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/alphaloop/internal/alpha"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// FrameStats describes the alpha channel of a frame.
type FrameStats struct {
	MeanAlpha float64
	StdAlpha  float64
	MaxAlpha  float64
	// Coverage is the fraction of pixels above the transparency limit.
	Coverage float64
}

// Stats computes alpha statistics for b.
func Stats(b *PixelBuffer) FrameStats {
	if b == nil || b.Len() == 0 {
		return FrameStats{}
	}
	alphas := make([]float64, b.Len())
	covered := 0
	for i, p := range b.Pix {
		alphas[i] = float64(p.A)
		if p.A > alpha.Limit {
			covered++
		}
	}
	mean, std := stat.MeanStdDev(alphas, nil)
	if b.Len() == 1 {
		std = 0
	}
	return FrameStats{
		MeanAlpha: mean,
		StdAlpha:  std,
		MaxAlpha:  floats.Max(alphas),
		Coverage:  float64(covered) / float64(len(alphas)),
	}
}

// MeanCoverage returns the mean Coverage over frames.
func MeanCoverage(frames []*PixelBuffer) float64 {
	if len(frames) == 0 {
		return 0
	}
	cov := make([]float64, len(frames))
	for i, f := range frames {
		cov[i] = Stats(f).Coverage
	}
	return stat.Mean(cov, nil)
}

// SeamError returns the RMS distance between the premultiplied RGBA of a
// and b. Comparing the last frame of a loop with its first measures how
// visible the seam is; premultiplying ignores colour hidden by zero alpha.
func SeamError(a, b *PixelBuffer) (float64, error) {
	if err := pixbuf.CheckSameSize(a, b); err != nil {
		return 0, err
	}
	va, vb := premultiplied(a), premultiplied(b)
	return floats.Distance(va, vb, 2) / math.Sqrt(float64(len(va))), nil
}

func premultiplied(b *PixelBuffer) []float64 {
	v := make([]float64, 0, 4*b.Len())
	for _, p := range b.Pix {
		a := float64(p.A)
		v = append(v, float64(p.R)*a, float64(p.G)*a, float64(p.B)*a, a)
	}
	return v
}
