package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if !decodeBody(w, r, &credentials) {
		return
	}

	result, err := h.services.AuthService.SignUp(r.Context(), credentials)
	if err != nil {
		writeServiceError(w, r, err, "sign up failed")
		return
	}

	writeAuthResult(w, r, result)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if !decodeBody(w, r, &credentials) {
		return
	}

	result, err := h.services.AuthService.SignIn(r.Context(), credentials)
	if err != nil {
		writeServiceError(w, r, err, "sign in failed")
		return
	}

	writeAuthResult(w, r, result)
}

func (h *Handler) signInWithProvider(w http.ResponseWriter, r *http.Request) {
	var credential models.ProviderCredential
	if !decodeBody(w, r, &credential) {
		return
	}

	result, err := h.services.AuthService.SignInWithProvider(r.Context(), credential)
	if err != nil {
		writeServiceError(w, r, err, "provider sign in failed")
		return
	}

	writeAuthResult(w, r, result)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), "")
		return
	}

	if err := h.services.AuthService.SignOut(r.Context(), token); err != nil {
		writeServiceError(w, r, err, "sign out failed")
		return
	}

	logger.FromRequest(r).Debug().Dur("ttl", token.TTL(time.Now())).Msg("token revoked")
	w.WriteHeader(http.StatusNoContent)
}

// writeAuthResult answers with the session token in the body and, as older
// clients expect, in the Authorization header.
func writeAuthResult(w http.ResponseWriter, r *http.Request, result models.AuthResult) {
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", result.Token))
	if _, err := utils.WriteJSON(w, result, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing auth result")
	}
}

// decodeBody decodes the JSON request body into v and answers 400 when it
// cannot. It reports whether the handler should go on.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utils.DecodeJSON(r.Body, v); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg(ErrInvalidJSON.Error())
		utils.WriteError(w, http.StatusBadRequest, ErrInvalidJSON.Error(), "")
		return false
	}
	return true
}
