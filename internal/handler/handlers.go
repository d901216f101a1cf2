package handler

import (
	"context"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/handler/grpc"
	"github.com/MKhiriev/go-chat-core/internal/handler/http"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/service"
)

// Pinger is a storage dependency whose reachability is reported by the
// health service.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates the transports enabled in cfg.Server. The HTTP
// profile stream is subscribed to profile updates on bus.
func NewHandlers(services *service.Services, bus *events.Bus, storage Pinger, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, bus, cfg.App.WebhookKey, logger)
		bus.Subscribe(events.ProfileUpdated, "profile-stream", handlers.HTTP.Hub().OnProfileUpdated)

		if cfg.App.WebhookKey == "" {
			logger.Warn().Msg("no webhook key configured, identity and storage events are rejected")
		}
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(map[string]grpc.Checker{
			"profiles": storage.Ping,
			"pipeline": func(context.Context) error {
				if bus.Closed() {
					return events.ErrClosed
				}
				return nil
			},
		}, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
