package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()

	// OnShutdown registers fn to run after the transports have stopped.
	// Hooks run in registration order.
	OnShutdown(name string, fn func(ctx context.Context) error)
}
