// Package mask restricts frames to the region covered by a mask capture.
//
// The mask is rendered once by a camera with a black background, so any
// lit pixel marks the inside of the mask.
package mask

import (
	"github.com/gogpu/alphaloop/internal/color"
	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// Mask is a binary coverage map: 255 inside, 0 outside.
// It is read-only once built and may be shared by concurrent Apply calls.
type Mask struct {
	width  int
	height int
	data   []uint8
}

// Inside reports whether a mask pixel counts as covered: it must have
// alpha and non-zero luminance.
func Inside(p pixbuf.RGBA) bool {
	return p.A > 0 && color.Luminance(p.R, p.G, p.B) > 0
}

// New builds a mask from a capture buffer.
func New(src *pixbuf.Buffer) (*Mask, error) {
	if src == nil {
		return nil, pixbuf.ErrNilBuffer
	}
	m := &Mask{
		width:  src.Width(),
		height: src.Height(),
		data:   make([]uint8, src.Len()),
	}
	for i, p := range src.Pix {
		if Inside(p) {
			m.data[i] = 255
		}
	}
	return m, nil
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y), 0 outside the bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Invert swaps inside and outside.
func (m *Mask) Invert() {
	for i := range m.data {
		m.data[i] = 255 - m.data[i]
	}
}

// Coverage returns the fraction of pixels inside the mask.
func (m *Mask) Coverage() float64 {
	if len(m.data) == 0 {
		return 0
	}
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return float64(n) / float64(len(m.data))
}

// Apply returns a copy of tex where every pixel outside the mask is
// transparent black and every pixel inside is unchanged. Applying the same
// mask twice gives the same result as applying it once.
func (m *Mask) Apply(pool *parallel.WorkerPool, tex *pixbuf.Buffer, batch int) (*pixbuf.Buffer, error) {
	if tex == nil {
		return nil, pixbuf.ErrNilBuffer
	}
	out := pixbuf.NewLike(tex)
	if err := m.ApplyInto(pool, out, tex, batch); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyInto is Apply writing into dst. dst may be tex itself.
func (m *Mask) ApplyInto(pool *parallel.WorkerPool, dst, tex *pixbuf.Buffer, batch int) error {
	if dst == nil || tex == nil {
		return pixbuf.ErrNilBuffer
	}
	if tex.Width() != m.width || tex.Height() != m.height {
		return mismatch(tex, m)
	}
	if err := pixbuf.CheckSameSize(dst, tex); err != nil {
		return err
	}
	dst.SetSpace(tex.Space())
	pool.For(len(dst.Pix), batch, func(start, end int) {
		for i := start; i < end; i++ {
			if m.data[i] != 0 {
				dst.Pix[i] = tex.Pix[i]
			} else {
				dst.Pix[i] = pixbuf.Transparent
			}
		}
	})
	return nil
}

// Apply masks tex with a mask capture buffer in one step.
func Apply(pool *parallel.WorkerPool, tex, maskBuf *pixbuf.Buffer, batch int) (*pixbuf.Buffer, error) {
	if err := pixbuf.CheckSameSize(tex, maskBuf); err != nil {
		return nil, err
	}
	m, err := New(maskBuf)
	if err != nil {
		return nil, err
	}
	return m.Apply(pool, tex, batch)
}
