package pixbuf

import (
	"sync"

	"github.com/gogpu/alphaloop/internal/color"
)

// Pool is a thread-safe pool for reusing buffers of identical size.
//
// Frames of one export session all share a size, so the pool effectively
// recycles the intermediates released by each stage.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buffer
	maxSize int // max buffers per bucket, 0 means unlimited
}

type poolKey struct {
	width  int
	height int
}

// NewPool creates a pool retaining at most maxPerBucket buffers per size.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Buffer),
		maxSize: maxPerBucket,
	}
}

// Get returns a cleared buffer of the given size, reusing a pooled one
// when available. A nil pool always allocates.
func (p *Pool) Get(width, height int) (*Buffer, error) {
	if p == nil {
		return New(width, height)
	}
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		bucket[len(bucket)-1] = nil
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.Clear()
		buf.space = color.ColorSpaceLinear
		return buf, nil
	}
	p.mu.Unlock()

	return New(width, height)
}

// GetLike returns a cleared buffer with the size and colour space of b.
func (p *Pool) GetLike(b *Buffer) *Buffer {
	if p == nil {
		return NewLike(b)
	}
	// b already passed the allocation checks, so Get cannot fail here.
	buf, err := p.Get(b.width, b.height)
	if err != nil {
		return NewLike(b)
	}
	buf.space = b.space
	return buf
}

// Put returns buffers to the pool. Nil buffers are ignored, and buffers
// beyond the bucket capacity are left to the garbage collector.
func (p *Pool) Put(bufs ...*Buffer) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, buf := range bufs {
		if buf == nil {
			continue
		}
		key := poolKey{width: buf.width, height: buf.height}
		bucket := p.buckets[key]
		if p.maxSize > 0 && len(bucket) >= p.maxSize {
			continue
		}
		p.buckets[key] = append(bucket, buf)
	}
}

// Len returns the number of pooled buffers across all sizes.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
