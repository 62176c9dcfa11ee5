// Package parallel runs per-pixel kernels as a batched parallel-for on a
// persistent pool of worker goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// DefaultBatchSize is the number of pixels handed to a worker at a time.
// It only affects throughput; results are identical for any batch size.
const DefaultBatchSize = 4096

// WorkerPool is a pool of goroutines for parallel kernel execution.
//
// The pool distributes work items across multiple workers, each with their own
// queue. Workers can steal work from other workers when their own queue is empty.
//
// Thread safety: WorkerPool is safe for concurrent use. Work items must not
// themselves submit to the same pool and wait, or the pool can deadlock.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds one queue per worker. A worker drains its own
	// queue first and steals from the others when it runs dry.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running reports whether the pool accepts work. For and ExecuteAll
	// fall back to the calling goroutine once it is false.
	running atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			work()

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				work()
			}
		}
	}
}

func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes work from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across workers and waits for all to complete.
// On a closed pool the work runs on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(work))

	for i, fn := range work {
		wrapped := func() {
			defer completion.Done()
			fn()
		}

		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			// Pool is closing; run the item here so the barrier still releases.
			wrapped()
		}
	}

	completion.Wait()
}

// For runs fn over [0, n) split into contiguous batches of at most batch
// indices and blocks until every batch has finished. fn must only write
// state owned by its own index range.
//
// A nil or closed pool, a single batch, or a single worker runs serially on
// the calling goroutine. batch <= 0 selects DefaultBatchSize.
func (p *WorkerPool) For(n, batch int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	batches := (n + batch - 1) / batch
	if p == nil || batches == 1 || p.workers == 1 || !p.running.Load() {
		fn(0, n)
		return
	}

	work := make([]func(), batches)
	for i := range batches {
		start := i * batch
		end := min(start+batch, n)
		work[i] = func() { fn(start, end) }
	}
	p.ExecuteAll(work)
}

// Close stops accepting new work, waits for queued work to complete and
// stops all workers. Close is safe to call multiple times and on nil.
func (p *WorkerPool) Close() {
	if p == nil || !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p != nil && p.running.Load()
}
