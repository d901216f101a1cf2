package http

import (
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/internal/utils"
)

type Handler struct {
	services *service.Services

	// events receives storage finalize notifications.
	events service.EventPublisher

	// hasher verifies webhook signatures. nil when no webhook key is set.
	hasher *utils.Hasher

	hub *ProfileHub

	logger *logger.Logger
}

// NewHandler returns the HTTP handler. An empty webhookKey disables the
// webhook endpoints.
func NewHandler(services *service.Services, publisher service.EventPublisher, webhookKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	var hasher *utils.Hasher
	if webhookKey != "" {
		hasher = utils.NewHasher(webhookKey)
	}

	return &Handler{
		services: services,
		events:   publisher,
		hasher:   hasher,
		hub:      NewProfileHub(logger),
		logger:   logger,
	}
}

// Hub returns the profile stream hub, to be subscribed to profile updates.
func (h *Handler) Hub() *ProfileHub {
	return h.hub
}
