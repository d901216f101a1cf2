package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// checkTimeout bounds a single dependency check.
const checkTimeout = 5 * time.Second

// Checker reports whether a dependency of a service is usable.
type Checker func(ctx context.Context) error

// Handler is the root gRPC transport handler. It serves the standard
// grpc.health.v1.Health service with one status per named service and an
// overall status under the empty name.
type Handler struct {
	health *health.Server

	// checks maps service names to their dependency checks.
	checks map[string]Checker

	logger *logger.Logger
}

// NewHandler returns a handler whose services start as SERVING. Call
// [Handler.RunChecks] to refresh them.
func NewHandler(checks map[string]Checker, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health: health.NewServer(),
		checks: checks,
		logger: logger,
	}
	for name := range checks {
		h.health.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// RunChecks runs every check and publishes the results. The overall status is
// SERVING only while every service is.
func (h *Handler) RunChecks(ctx context.Context) {
	overall := healthpb.HealthCheckResponse_SERVING

	for name, check := range h.checks {
		status := healthpb.HealthCheckResponse_SERVING

		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		if err := check(checkCtx); err != nil {
			h.logger.Warn().Err(err).Str("service", name).Msg("health check failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
			overall = healthpb.HealthCheckResponse_NOT_SERVING
		}
		cancel()

		h.health.SetServingStatus(name, status)
	}

	h.health.SetServingStatus("", overall)
}

// Shutdown reports NOT_SERVING for everything and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
