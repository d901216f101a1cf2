// Package server wires and runs the application's transport servers.
//
// It provides orchestration for HTTP and gRPC server lifecycles, including
// startup, signal handling, graceful shutdown of all enabled transports and
// the shutdown hooks that release the event bus, workers and storages.
package server
