package http

import (
	"net/http"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	profile, err := h.services.ProfileService.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "error getting profile")
		return
	}

	writeJSON(w, r, profile, http.StatusOK)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var patch models.SettingsPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	settings, err := h.services.ProfileService.UpdateSettings(r.Context(), uid, patch)
	if err != nil {
		writeServiceError(w, r, err, "error updating settings")
		return
	}

	writeJSON(w, r, settings, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var patch models.ProfilePatch
	if !decodeBody(w, r, &patch) {
		return
	}

	profile, err := h.services.ProfileService.UpdateProfile(r.Context(), uid, patch)
	if err != nil {
		writeServiceError(w, r, err, "error updating profile")
		return
	}

	writeJSON(w, r, profile, http.StatusOK)
}

func (h *Handler) setPushToken(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var req models.PushTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.services.ProfileService.SetPushToken(r.Context(), uid, req.Token); err != nil {
		writeServiceError(w, r, err, "error setting push token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// profileStream upgrades to a websocket that first carries the current
// profile and then every update of it.
func (h *Handler) profileStream(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}
	log := logger.FromRequest(r)

	profile, err := h.services.ProfileService.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "error getting profile for stream")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already answered
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	log.Debug().Msg("profile stream opened")
	if err := h.hub.Serve(conn, uid, profile); err != nil {
		log.Warn().Err(err).Msg("profile stream rejected")
		return
	}
	log.Debug().Msg("profile stream closed")
}

func requireUID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := utils.GetUIDFromContext(r.Context())
	if !ok || uid == "" {
		logger.FromRequest(r).Error().Msg("no uid in request context")
		utils.WriteError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), "")
		return "", false
	}
	return uid, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any, status int) {
	if _, err := utils.WriteJSON(w, v, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
