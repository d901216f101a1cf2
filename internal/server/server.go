package server

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/handler"
	"github.com/MKhiriev/go-chat-core/internal/logger"
)

// shutdownTimeout bounds the whole graceful shutdown.
const shutdownTimeout = 30 * time.Second

type shutdownHook struct {
	name string
	fn   func(ctx context.Context) error
}

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	hooks      []shutdownHook
	once       sync.Once
	done       chan struct{}
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{done: make(chan struct{})}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	servers.logger = logger

	return servers, nil
}

func (s *server) OnShutdown(name string, fn func(ctx context.Context) error) {
	s.hooks = append(s.hooks, shutdownHook{name: name, fn: fn})
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

// Shutdown stops the transports first so that no new work arrives, then runs
// the hooks. It is safe to call more than once.
func (s *server) Shutdown() {
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var wg sync.WaitGroup
		if s.httpServer != nil {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.httpServer.Shutdown(ctx)
			}()
		}
		if s.gRPCServer != nil {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.gRPCServer.Shutdown(ctx)
			}()
		}
		wg.Wait()

		for _, hook := range s.hooks {
			if err := hook.fn(ctx); err != nil {
				s.logger.Err(err).Str("hook", hook.name).Msg("shutdown hook failed")
				continue
			}
			s.logger.Debug().Str("hook", hook.name).Msg("shutdown hook done")
		}

		close(s.done)
	})
}

func (s *server) run() error {
	// check if any server was created
	if s.httpServer == nil && s.gRPCServer == nil {
		return errors.New("no servers to run")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		select {
		case <-ctx.Done():
			// finish started servers
			s.Shutdown()
		case <-s.done:
		}
	}()

	// launch all created servers
	if s.httpServer != nil {
		s.logger.Info().Msg("Launching HTTP server")
		go s.httpServer.RunServer()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Msg("Launching GRPC server")
		go s.gRPCServer.RunServer()
	}

	<-s.done
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
