package alphaloop

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/alphaloop/internal/alpha"
	"github.com/gogpu/alphaloop/internal/gamma"
	"github.com/gogpu/alphaloop/internal/loop"
	"github.com/gogpu/alphaloop/internal/mask"
	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// bufferPoolCap bounds the frames a pipeline keeps for reuse per size.
const bufferPoolCap = 32

// Pipeline drives the kernels over a capture session.
//
// A Pipeline may run several sessions one after another but not
// concurrently.
type Pipeline struct {
	cfg     Config
	plan    FramePlan
	pool    *parallel.WorkerPool
	ownPool bool
	buffers *pixbuf.Pool
	maskSrc MaskSource
	mask    *mask.Mask
	closed  atomic.Bool
}

// Report summarises a finished run.
type Report struct {
	Plan FramePlan
	// Frames is the number of frames exported.
	Frames int
	// SeamError is the RMS distance between the last and first exported
	// frames, 0 without a loop.
	SeamError float64
	// MeanCoverage is the mean fraction of visible pixels per frame.
	MeanCoverage float64
	Elapsed      time.Duration
}

// NewPipeline validates cfg and starts the worker pool.
func NewPipeline(cfg Config, opts ...Option) (*Pipeline, error) {
	plan, err := cfg.Plan()
	if err != nil {
		return nil, err
	}
	var o pipelineOptions
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{
		cfg:     cfg,
		plan:    plan,
		pool:    o.pool,
		buffers: o.buffers,
		maskSrc: o.mask,
	}
	if p.pool == nil {
		p.pool = parallel.NewWorkerPool(cfg.Workers)
		p.ownPool = true
	}
	if p.buffers == nil {
		p.buffers = pixbuf.NewPool(bufferPoolCap)
	}

	Logger().Info("pipeline: created",
		"total", plan.TotalFrames,
		"output", plan.OutputFrames,
		"transition", plan.TransitionFrames,
		"variant", cfg.Loop,
		"workers", p.pool.Workers())
	return p, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Plan returns the frame plan.
func (p *Pipeline) Plan() FramePlan { return p.plan }

// Buffers returns the pool released frames are recycled through. Capture
// sources may draw their renders from it.
func (p *Pipeline) Buffers() *BufferPool { return p.buffers }

// SetMask installs the mask applied according to Config.Mask.
// A nil buffer removes it.
func (p *Pipeline) SetMask(buf *PixelBuffer) error {
	if buf == nil {
		p.mask = nil
		return nil
	}
	m, err := mask.New(buf)
	if err != nil {
		return err
	}
	p.mask = m
	Logger().Debug("pipeline: mask installed", "coverage", m.Coverage())
	return nil
}

func (p *Pipeline) alphaParams() alpha.Params {
	return alpha.Params{
		Smooth:      p.cfg.AlphaSmooth,
		SmoothLimit: p.cfg.AlphaSmoothLimit,
		SmoothDamp:  p.cfg.AlphaSmoothDamp,
		BatchSize:   p.cfg.BatchSize,
	}
}

// Process turns one capture set into a straight-alpha frame and applies
// the input mask. It takes ownership of the set's buffers.
func (p *Pipeline) Process(set CaptureSet) (*PixelBuffer, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	if err := set.Validate(p.cfg); err != nil {
		return nil, err
	}

	var out *PixelBuffer
	if p.cfg.Capture == CaptureOpaque {
		out = set.Black
		set.Black = nil
	} else {
		out = p.buffers.GetLike(set.Black)
		var err error
		if p.cfg.RGBExtraTest {
			err = alpha.RecoverRGBInto(p.pool, out, set.Black, set.White, set.Red, set.Green, set.Blue, p.alphaParams())
		} else {
			err = alpha.RecoverInto(p.pool, out, set.Black, set.White, p.alphaParams())
		}
		if err != nil {
			p.buffers.Put(out)
			return nil, err
		}
	}
	p.buffers.Put(set.Buffers()...)

	if p.cfg.Mask == MaskOnInput && p.mask != nil {
		if err := p.mask.ApplyInto(p.pool, out, out, p.cfg.BatchSize); err != nil {
			p.buffers.Put(out)
			return nil, err
		}
	}
	return out, nil
}

// Run captures every planned frame from src, assembles the loop and
// exports the result to dst in presentation order. Nothing is exported
// unless every frame was processed. The context is checked between frames.
//
// dst must not retain a frame after Export returns.
func (p *Pipeline) Run(ctx context.Context, src CaptureSource, dst Exporter) (Report, error) {
	if p.closed.Load() {
		return Report{}, ErrClosed
	}
	start := time.Now()
	log := Logger()

	if err := p.loadMask(ctx, src); err != nil {
		return Report{}, err
	}

	frames := make([]*PixelBuffer, 0, p.plan.TotalFrames)
	defer func() {
		p.buffers.Put(frames...)
	}()

	for i := range p.plan.TotalFrames {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		set, err := src.Capture(ctx, i)
		if err != nil {
			return Report{}, fmt.Errorf("capture frame %d: %w", i, err)
		}
		out, err := p.Process(set)
		if err != nil {
			return Report{}, fmt.Errorf("process frame %d: %w", i, err)
		}
		frames = append(frames, out)
		log.Debug("pipeline: frame recovered", "frame", i, "total", p.plan.TotalFrames)
	}

	if p.plan.Loop {
		as := &loop.Assembler{
			Transition: p.plan.TransitionFrames,
			Variant:    p.cfg.Loop,
			Multiplier: p.cfg.TransitionMultiplier,
			Pool:       p.pool,
			BatchSize:  p.cfg.BatchSize,
			Buffers:    p.buffers,
			Logger:     log,
		}
		assembled, err := as.Run(ctx, frames)
		if err != nil {
			// frames still holds every capture, released ones included.
			return Report{}, fmt.Errorf("assemble loop: %w", err)
		}
		p.buffers.Put(as.Released()...)
		frames = assembled
		log.Debug("pipeline: loop assembled", "frames", len(frames))
	}

	if err := p.finish(ctx, frames); err != nil {
		return Report{}, err
	}

	report := Report{
		Plan:         p.plan,
		Frames:       len(frames),
		MeanCoverage: MeanCoverage(frames),
	}
	if p.plan.Loop && len(frames) > 1 {
		seam, err := SeamError(frames[len(frames)-1], frames[0])
		if err != nil {
			return Report{}, err
		}
		report.SeamError = seam
	}

	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		if err := dst.Export(ctx, i, f); err != nil {
			return Report{}, fmt.Errorf("export frame %d: %w", i, err)
		}
	}

	report.Elapsed = time.Since(start)
	log.Info("pipeline: run complete",
		"frames", report.Frames,
		"seam", report.SeamError,
		"coverage", report.MeanCoverage,
		"elapsed", report.Elapsed)
	return report, nil
}

// finish applies the output mask, gamma encoding and the final clamp to
// every frame in place. Frames are independent and processed concurrently.
func (p *Pipeline) finish(ctx context.Context, frames []*PixelBuffer) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.pool.Workers())
	for i, f := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if p.cfg.Mask == MaskOnOutput && p.mask != nil {
				if err := p.mask.ApplyInto(p.pool, f, f, p.cfg.BatchSize); err != nil {
					return fmt.Errorf("mask frame %d: %w", i, err)
				}
			}
			if p.cfg.ConvertLinearToGamma {
				if err := gamma.LinearToGammaInto(p.pool, f, f, p.cfg.BatchSize); err != nil {
					return fmt.Errorf("gamma frame %d: %w", i, err)
				}
			}
			f.Clamp()
			return nil
		})
	}
	return g.Wait()
}

func (p *Pipeline) loadMask(ctx context.Context, src CaptureSource) error {
	if p.cfg.Mask == MaskOff || p.mask != nil {
		return nil
	}
	ms := p.maskSrc
	if ms == nil {
		if s, ok := src.(MaskSource); ok {
			ms = s
		}
	}
	if ms == nil {
		return fmt.Errorf("%w: Mask is %v but no mask source is set", ErrInvalidConfiguration, p.cfg.Mask)
	}
	buf, err := ms.Mask(ctx)
	if err != nil {
		return fmt.Errorf("capture mask: %w", err)
	}
	return p.SetMask(buf)
}

// Close stops the worker pool if the pipeline owns it. Close is idempotent.
func (p *Pipeline) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	if p.ownPool {
		p.pool.Close()
	}
	return nil
}

// IsClosed reports whether Close was called.
func (p *Pipeline) IsClosed() bool { return p.closed.Load() }
