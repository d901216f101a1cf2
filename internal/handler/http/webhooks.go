package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-chat-core/internal/app"
	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
)

// identityEvent mirrors identity provider lifecycle events. It runs
// synchronously so that a failure answers 5xx and the provider redelivers.
func (h *Handler) identityEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var event models.IdentityEvent
	if !decodeBody(w, r, &event) {
		return
	}

	if event.Identity.UID == "" {
		utils.WriteError(w, http.StatusBadRequest, app.MsgIdentityUIDRequired, "identity.uid")
		return
	}

	switch event.Type {
	case models.IdentityCreated:
		if _, err := h.services.AccountService.OnIdentityCreated(r.Context(), event.Identity); err != nil {
			writeServiceError(w, r, err, "error mirroring created identity")
			return
		}
	case models.IdentityDeleted:
		if err := h.services.AccountService.OnIdentityDeleted(r.Context(), event.Identity.UID); err != nil {
			writeServiceError(w, r, err, "error mirroring deleted identity")
			return
		}
	default:
		writeServiceError(w, r, fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type), "identity event rejected")
		return
	}

	log.Info().Str("type", string(event.Type)).Str("uid", event.Identity.UID).Msg("identity event applied")
	w.WriteHeader(http.StatusNoContent)
}

// storageEvent queues thumbnail generation for a finalized object and
// answers 202 right away.
func (h *Handler) storageEvent(w http.ResponseWriter, r *http.Request) {
	var obj models.StoredObject
	if !decodeBody(w, r, &obj) {
		return
	}

	if obj.Name == "" {
		utils.WriteError(w, http.StatusBadRequest, app.MsgObjectNameRequired, "name")
		return
	}

	if err := h.events.Publish(r.Context(), events.ObjectFinalized, obj.Name, obj); err != nil {
		writeServiceError(w, r, err, "error queueing finalized object")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
