package http

import (
	"net/http"

	"github.com/MKhiriev/go-chat-core/models"
)

// createMessage stores the message and returns it. Translation and push
// delivery happen later on the event bus and never fail this request.
func (h *Handler) createMessage(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var req models.CreateMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := h.services.ChatService.CreateMessage(r.Context(), uid, req)
	if err != nil {
		writeServiceError(w, r, err, "error creating message")
		return
	}

	writeJSON(w, r, msg, http.StatusCreated)
}

func (h *Handler) createCall(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var req models.CreateCallRequest
	if !decodeBody(w, r, &req) {
		return
	}

	call, err := h.services.ChatService.CreateCall(r.Context(), uid, req)
	if err != nil {
		writeServiceError(w, r, err, "error creating call")
		return
	}

	writeJSON(w, r, call, http.StatusCreated)
}

func (h *Handler) createStory(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(w, r)
	if !ok {
		return
	}

	var req models.CreateStoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	story, err := h.services.ChatService.CreateStory(r.Context(), uid, req)
	if err != nil {
		writeServiceError(w, r, err, "error creating story")
		return
	}

	writeJSON(w, r, story, http.StatusCreated)
}
