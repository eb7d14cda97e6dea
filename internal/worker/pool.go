package worker

import (
	"context"
	"sync"
)

// Task is one unit of batch work, typically the scoring of a single
// (resume, vacancy) pair.
type Task func(ctx context.Context) error

type Result struct {
	Err error
}

// Pool is a bounded worker pool for batch scoring. Cancellation is
// cooperative: an in-flight task finishes, no further tasks are started, so a
// cancelled batch never leaves a partially written result behind.
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

// Submit enqueues a task. It blocks when the buffer is full.
func (p *Pool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

// Close signals that no further tasks will be submitted.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers and returns a channel of per-task results, closed
// once all workers have drained. A task error is reported on the channel,
// never allowed to abort the rest of the batch.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	buf := p.workers * 64
	if buf < 1 {
		buf = 1
	}
	out := make(chan Result, buf)
	if p == nil {
		close(out)
		return out
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
