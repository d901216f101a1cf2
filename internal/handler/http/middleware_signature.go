package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-chat-core/internal/app"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/utils"
)

// maxWebhookBody caps webhook bodies read for signature checks.
const maxWebhookBody = 1 << 20

// verifySignature rejects webhook requests whose HashSHA256 header is not the
// HMAC of the raw body. The body is restored for the next handler.
func (h *Handler) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if h.hasher == nil {
			writeServiceError(w, r, ErrWebhooksDisabled, "webhook rejected")
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.WriteError(w, http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge), "")
				return
			}
			log.Err(err).Msg("error reading webhook body")
			utils.WriteError(w, http.StatusBadRequest, app.MsgErrorReadingBody, "")
			return
		}

		if !h.hasher.Verify(body, r.Header.Get(utils.HashHeader)) {
			log.Warn().Err(ErrInvalidSignature).Str("path", r.URL.Path).Send()
			utils.WriteError(w, http.StatusUnauthorized, ErrInvalidSignature.Error(), "")
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
