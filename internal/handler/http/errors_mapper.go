package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-chat-core/internal/adapter"
	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/internal/validators"
)

// errorStatuses is checked in order. Upstream errors wrap more specific
// sentinels such as adapter.ErrInvalidCredentials, so the catch-all
// adapter.ErrUpstream comes last.
var errorStatuses = []struct {
	target error
	status int
}{
	{validators.ErrValidation, http.StatusBadRequest},
	{validators.ErrUnknownField, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrUnknownEventType, http.StatusBadRequest},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{adapter.ErrInvalidCredentials, http.StatusUnauthorized},

	{service.ErrPermissionDenied, http.StatusForbidden},

	{service.ErrNotFound, http.StatusNotFound},

	{adapter.ErrEmailExists, http.StatusConflict},
	{store.ErrAlreadyExists, http.StatusConflict},

	{service.ErrQuotaExceeded, http.StatusTooManyRequests},

	{service.ErrObjectStorageDisabled, http.StatusServiceUnavailable},
	{ErrWebhooksDisabled, http.StatusServiceUnavailable},
	{events.ErrClosed, http.StatusServiceUnavailable},

	{adapter.ErrUpstream, http.StatusBadGateway},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError answers with the status mapped from err. Client errors
// carry the error text and, for validation failures, the offending field.
// Server errors never leak their cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
		utils.WriteError(w, status, http.StatusText(status), "")
		return
	}

	log.Warn().Err(err).Int("status", status).Msg(msg)

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		utils.WriteError(w, status, validationErr.Error(), validationErr.Field)
		return
	}

	utils.WriteError(w, status, err.Error(), "")
}
