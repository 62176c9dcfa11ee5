package loop

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/alphaloop/internal/blend"
	"github.com/gogpu/alphaloop/internal/parallel"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// Assembler buffers frames and reassembles them into a loop.
// It is not safe for concurrent use; the blends it runs are.
type Assembler struct {
	// Transition is the window length in frames, even and at least 2.
	Transition int
	// Variant selects the transition kernel.
	Variant blend.Variant
	// Multiplier is used by the custom variants.
	Multiplier float32
	// Pool runs the per-pixel kernels. Nil runs them serially.
	Pool *parallel.WorkerPool
	// BatchSize is the per-pixel batch size; 0 selects the default.
	BatchSize int
	// Concurrency bounds the window frames blended at once; 0 uses GOMAXPROCS.
	Concurrency int
	// Buffers supplies the blended frames. Nil allocates.
	Buffers *pixbuf.Pool
	// Logger receives a debug record with the weights of every window
	// frame. Nil discards them.
	Logger *slog.Logger

	state    State
	frames   []*pixbuf.Buffer
	a, b     []*pixbuf.Buffer
	blended  []*pixbuf.Buffer
	output   []*pixbuf.Buffer
	released []*pixbuf.Buffer
}

// State returns the current state.
func (as *Assembler) State() State { return as.state }

// Len returns the number of buffered frames.
func (as *Assembler) Len() int { return len(as.frames) }

// Push appends a frame in presentation order. Ownership moves to the
// assembler.
func (as *Assembler) Push(frames ...*pixbuf.Buffer) error {
	if as.state != Buffering {
		return stateError("push", as.state)
	}
	for _, f := range frames {
		if f == nil {
			return pixbuf.ErrNilBuffer
		}
		if len(as.frames) > 0 {
			if err := pixbuf.CheckSameSize(as.frames[0], f); err != nil {
				return fmt.Errorf("frame %d: %w", len(as.frames), err)
			}
		}
		as.frames = append(as.frames, f)
	}
	return nil
}

// Split divides the buffered frames into the first and last N/2 frames.
// With an odd N the middle frame is dropped.
func (as *Assembler) Split() error {
	if as.state != Buffering {
		return stateError("split", as.state)
	}
	if as.Transition < 2 || as.Variant == blend.Off || !as.Variant.Valid() {
		return fmt.Errorf("%w: %d frames, variant %v", ErrSettings, as.Transition, as.Variant)
	}
	n := len(as.frames)
	half := n / 2
	if half < as.Transition {
		return fmt.Errorf("%w: %d frames, window %d", ErrTooFewFrames, n, as.Transition)
	}

	as.a = as.frames[:half:half]
	as.b = as.frames[n-half:]
	if n%2 == 1 {
		as.released = append(as.released, as.frames[half])
	}
	as.frames = nil
	as.state = SplitHalves
	return nil
}

// BlendWindow blends a[i] with b[len(b)-T+i] for every i in the window.
// Window frames are independent and run concurrently. On error or
// cancellation the assembler stays in SplitHalves.
func (as *Assembler) BlendWindow(ctx context.Context) error {
	if as.state != SplitHalves {
		return stateError("blend window", as.state)
	}
	t := as.Transition
	offset := len(as.b) - t
	blended := make([]*pixbuf.Buffer, t)

	g, ctx := errgroup.WithContext(ctx)
	limit := as.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)

	for i := range t {
		p := blend.Params{
			Index:      i,
			Total:      t,
			Multiplier: as.Multiplier,
			BatchSize:  as.BatchSize,
		}
		if as.Logger != nil {
			ax, ay := blend.Weights(as.Variant, p)
			as.Logger.Debug("loop: transition frame",
				"index", i,
				"t", p.Progress(),
				"multiplier", as.Multiplier,
				"alpha_a", ax,
				"alpha_b", ay)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := as.Buffers.GetLike(as.a[i])
			err := blend.BlendInto(as.Pool, out, as.Variant, as.a[i], as.b[offset+i], p)
			if err != nil {
				as.Buffers.Put(out)
				return fmt.Errorf("transition frame %d: %w", i, err)
			}
			blended[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		as.Buffers.Put(blended...)
		return err
	}

	as.blended = blended
	as.released = append(as.released, as.a[:t]...)
	as.released = append(as.released, as.b[offset:]...)
	as.state = Transitioning
	return nil
}

// Reassemble produces the loop: the head of B, the blended window, then
// the tail of A. The result has len(A)+len(B)-T frames.
func (as *Assembler) Reassemble() ([]*pixbuf.Buffer, error) {
	if as.state != Transitioning {
		return nil, stateError("reassemble", as.state)
	}
	t := as.Transition
	out := make([]*pixbuf.Buffer, 0, len(as.a)+len(as.b)-t)
	out = append(out, as.b[:len(as.b)-t]...)
	out = append(out, as.blended...)
	out = append(out, as.a[t:]...)

	as.a, as.b, as.blended = nil, nil, nil
	as.output = out
	as.state = Reassembled
	return out, nil
}

// Output returns the reassembled sequence, or nil before Reassembled.
func (as *Assembler) Output() []*pixbuf.Buffer { return as.output }

// Released returns the frames the assembler no longer references and
// forgets them. The caller may recycle them.
func (as *Assembler) Released() []*pixbuf.Buffer {
	r := as.released
	as.released = nil
	return r
}

// Run pushes frames and performs every step.
func (as *Assembler) Run(ctx context.Context, frames []*pixbuf.Buffer) ([]*pixbuf.Buffer, error) {
	if err := as.Push(frames...); err != nil {
		return nil, err
	}
	if err := as.Split(); err != nil {
		return nil, err
	}
	if err := as.BlendWindow(ctx); err != nil {
		return nil, err
	}
	return as.Reassemble()
}

// Reset returns the assembler to Buffering and drops every reference.
func (as *Assembler) Reset() {
	as.frames, as.a, as.b, as.blended, as.output, as.released = nil, nil, nil, nil, nil, nil
	as.state = Buffering
}
