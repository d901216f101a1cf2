package workers

import (
	"context"
	"sync"
)

// Workers is a group of workers started and stopped together.
type Workers struct {
	workers []Worker

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker on its own goroutine and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Stop cancels all workers and waits until they have returned. Safe to call
// when Run was never called.
func (w *Workers) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
