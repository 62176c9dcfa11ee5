package alphaloop

import (
	"errors"

	"github.com/gogpu/alphaloop/internal/pixbuf"
)

var (
	// ErrInvalidConfiguration is returned by Config.Validate and by
	// NewPipeline before any kernel runs.
	ErrInvalidConfiguration = errors.New("alphaloop: invalid configuration")

	// ErrMissingCapture is returned when a capture set lacks a background
	// the configuration requires.
	ErrMissingCapture = errors.New("alphaloop: capture set is missing a background")

	// ErrClosed is returned when using a closed pipeline.
	ErrClosed = errors.New("alphaloop: pipeline closed")

	// ErrDimensionMismatch is returned when buffers that must share a size
	// do not.
	ErrDimensionMismatch = pixbuf.ErrDimensionMismatch

	// ErrAllocation is returned when a frame is too large to allocate.
	ErrAllocation = pixbuf.ErrAllocation
)
