package worker

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrStopped   = errors.New("worker: pool stopped")
	ErrQueueFull = errors.New("worker: queue full")
)

// QueuePerWorker 每個 worker 可排隊的 task 數
const QueuePerWorker = 64

// Task represents a unit of work executed by the pool.
// ctx is cancelled after the pool's per-task timeout.
type Task func(ctx context.Context)

// Pool defines a bounded worker pool.
type Pool interface {
	// Submit never blocks: ErrQueueFull when the queue is saturated,
	// ErrStopped once the pool has been stopped.
	Submit(Task) error
	// Stop rejects new tasks and waits for queued ones to finish.
	Stop()
}

// NewPool creates a pool with n workers and a queue of n*QueuePerWorker tasks.
// n<=0 defaults to 1, timeout<=0 means no per-task deadline.
func NewPool(n int, timeout time.Duration) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n*QueuePerWorker), timeout: timeout}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					p.run(job)
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs    chan Task
	timeout time.Duration
	wg      sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func (p *pool) run(t Task) {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	t(ctx)
}

func (p *pool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
