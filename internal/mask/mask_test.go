package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// circleMask lights the pixels of a rough disc on a black background.
func circleMask(t *testing.T, size int) *pixbuf.Buffer {
	t.Helper()
	b, err := pixbuf.Filled(size, size, pixbuf.RGBA{A: 1})
	require.NoError(t, err)
	c := size / 2
	for y := range size {
		for x := range size {
			if (x-c)*(x-c)+(y-c)*(y-c) <= c*c/2 {
				b.Set(x, y, pixbuf.RGBA{R: 0.1, G: 0.8, B: 0.3, A: 1})
			}
		}
	}
	return b
}

func texture(t *testing.T, size int) *pixbuf.Buffer {
	t.Helper()
	b, err := pixbuf.New(size, size)
	require.NoError(t, err)
	for i := range b.Pix {
		f := float32(i) / float32(len(b.Pix))
		b.Pix[i] = pixbuf.RGBA{R: f, G: 0.5, B: 1 - f, A: 0.75}
	}
	return b
}

func newMask(t *testing.T, b *pixbuf.Buffer) *Mask {
	t.Helper()
	m, err := New(b)
	require.NoError(t, err)
	return m
}

func TestInside(t *testing.T) {
	tests := []struct {
		name string
		p    pixbuf.RGBA
		want bool
	}{
		{"black background", pixbuf.RGBA{A: 1}, false},
		{"lit", pixbuf.RGBA{R: 0.01, A: 1}, true},
		{"transparent white", pixbuf.RGBA{R: 1, G: 1, B: 1}, false},
		{"dim blue", pixbuf.RGBA{B: 0.02, A: 0.5}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Inside(tt.p), tt.name)
	}
}

func TestApplyKeepsInsideClearsOutside(t *testing.T) {
	const size = 16
	mb := circleMask(t, size)
	tex := texture(t, size)

	out, err := Apply(nil, tex, mb, 0)
	require.NoError(t, err)
	for i := range out.Pix {
		if Inside(mb.Pix[i]) {
			require.Equal(t, tex.Pix[i], out.Pix[i], "inside pixel %d", i)
		} else {
			require.Equal(t, pixbuf.Transparent, out.Pix[i], "outside pixel %d", i)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	const size = 24
	m := newMask(t, circleMask(t, size))
	pool := parallel.NewWorkerPool(4)
	defer pool.Close()

	once, err := m.Apply(pool, texture(t, size), 13)
	require.NoError(t, err)
	twice, err := m.Apply(pool, once, 13)
	require.NoError(t, err)
	assert.True(t, twice.Equal(once), "applying the mask twice changed the result")
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tex := texture(t, 8)
	before := tex.Clone()
	_, err := Apply(nil, tex, circleMask(t, 8), 0)
	require.NoError(t, err)
	assert.True(t, tex.Equal(before), "Apply mutated its input")
}

func TestApplyDimensionMismatch(t *testing.T) {
	_, err := Apply(nil, texture(t, 8), circleMask(t, 9), 0)
	assert.ErrorIs(t, err, pixbuf.ErrDimensionMismatch)

	m := newMask(t, circleMask(t, 9))
	_, err = m.Apply(nil, texture(t, 8), 0)
	assert.ErrorIs(t, err, pixbuf.ErrDimensionMismatch)
	_, err = m.Apply(nil, nil, 0)
	assert.ErrorIs(t, err, pixbuf.ErrNilBuffer)
}

func TestCoverageAndInvert(t *testing.T) {
	b, err := pixbuf.New(4, 1)
	require.NoError(t, err)
	b.Pix[0] = pixbuf.RGBA{R: 1, G: 1, B: 1, A: 1}
	m := newMask(t, b)

	assert.Equal(t, 0.25, m.Coverage())
	assert.Equal(t, uint8(255), m.At(0, 0))
	assert.Equal(t, uint8(0), m.At(1, 0))
	assert.Equal(t, uint8(0), m.At(9, 9), "out of bounds")

	m.Invert()
	assert.Equal(t, 0.75, m.Coverage())
	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 1, m.Height())
}

func TestApplyIntoInPlace(t *testing.T) {
	const size = 12
	m := newMask(t, circleMask(t, size))
	tex := texture(t, size)
	want, err := m.Apply(nil, tex, 0)
	require.NoError(t, err)

	require.NoError(t, m.ApplyInto(nil, tex, tex, 0))
	assert.True(t, tex.Equal(want), "in-place ApplyInto differs from Apply")
}
