package alphaloop

import (
	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// Option configures a Pipeline during creation.
//
// Example:
//
//	p, err := alphaloop.NewPipeline(cfg, alphaloop.WithMaskSource(masks))
type Option func(*pipelineOptions)

type pipelineOptions struct {
	pool    *parallel.WorkerPool
	buffers *pixbuf.Pool
	mask    MaskSource
}

// WithWorkerPool shares an existing pixel worker pool. The pipeline does
// not close a shared pool.
func WithWorkerPool(pool *WorkerPool) Option {
	return func(o *pipelineOptions) {
		o.pool = pool
	}
}

// WithBufferPool sets the pool intermediate frames are recycled through.
func WithBufferPool(buffers *BufferPool) Option {
	return func(o *pipelineOptions) {
		o.buffers = buffers
	}
}

// WithMaskSource sets where the mask comes from when the capture source
// does not implement MaskSource itself.
func WithMaskSource(m MaskSource) Option {
	return func(o *pipelineOptions) {
		o.mask = m
	}
}
