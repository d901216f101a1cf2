// Package workers runs the background jobs of the chat server: the temp
// upload sweep and the expired story sweep.
//
// A Worker blocks in Run until its context is cancelled. Workers starts a
// set of them together and waits for all of them on shutdown.
package workers

import "context"

// Worker is a long-running background job.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Name() string
	Run(ctx context.Context)
}
