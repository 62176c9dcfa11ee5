package blend

import "math"

// Params describes one frame of the transition window.
type Params struct {
	// Index is the position in the window, 0-based.
	Index int
	// Total is the number of frames in the window.
	Total int
	// Multiplier boosts the weights of the custom variants.
	Multiplier float32
	// BatchSize is the parallel-for batch size; 0 selects the default.
	BatchSize int
}

// Progress returns t = clamp01((index+1)/(total+1)). It never reaches 0 or
// 1 inside the window, so both frames contribute to every transition frame.
func (p Params) Progress() float32 {
	if p.Total < 0 {
		return 0
	}
	return clamp01(float32(p.Index+1) / float32(p.Total+1))
}

// Weights returns the alpha weights (ax, ay) applied to frames A and B.
func Weights(v Variant, p Params) (ax, ay float32) {
	t := p.Progress()
	switch v {
	case Standard:
		return t, 1 - t
	case StandardNormalized:
		return normalize(t, 1-t)
	case Custom:
		return clamp01(t * p.Multiplier), clamp01((1 - t) * p.Multiplier)
	case CustomNormalized:
		x, y := normalize(t, 1-t)
		return clamp01(x * p.Multiplier), clamp01(y * p.Multiplier)
	case Overlap:
		return 1, 1
	default:
		return 0, 0
	}
}

// normalize scales (x, y) to unit Euclidean length.
func normalize(x, y float32) (float32, float32) {
	l := float32(math.Hypot(float64(x), float64(y)))
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

func clamp01(v float32) float32 {
	return max(0, min(v, 1))
}
