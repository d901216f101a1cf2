package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/rs/zerolog"
)

type tokenCtxKey struct{}

// auth is an HTTP middleware that enforces bearer authentication.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.AuthService.ParseToken] and stores the uid and token id in the
// request context under the [utils] keys. The parsed token itself is kept
// for handlers that need its expiry, such as sign-out. Rejected requests get
// HTTP 401 with a JSON error body.
func (h *Handler) auth(next http.Handler) http.Handler {
	return h.authenticate(next, func(r *http.Request) (string, error) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			return "", ErrEmptyAuthorizationHeader
		}
		return getTokenFromAuthHeader(authHeader)
	})
}

// authQuery accepts the token from the "token" query parameter as well,
// since browsers cannot set headers on websocket upgrades.
func (h *Handler) authQuery(next http.Handler) http.Handler {
	return h.authenticate(next, func(r *http.Request) (string, error) {
		if token := r.URL.Query().Get("token"); token != "" {
			return token, nil
		}
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			return "", ErrEmptyAuthorizationHeader
		}
		return getTokenFromAuthHeader(authHeader)
	})
}

func (h *Handler) authenticate(next http.Handler, extract func(*http.Request) (string, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := extract(r)
		if err != nil {
			log.Warn().Err(err).Msg("request rejected")
			utils.WriteError(w, http.StatusUnauthorized, err.Error(), "")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeServiceError(w, r, err, "error occurred during parsing token")
			return
		}

		ctx = utils.WithUID(ctx, token.UID, token.ID)
		ctx = context.WithValue(ctx, tokenCtxKey{}, token)

		l := log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("uid", token.UID)
		})
		ctx = l.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromContext returns the token stored by the auth middleware.
func tokenFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(tokenCtxKey{}).(models.Token)
	return token, ok
}

// getTokenFromAuthHeader extracts the token of an "Authorization: Bearer
// <token>" header value.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}
	return tokenString, nil
}
