package models

import "time"

// CreateMessageRequest is the body of POST /api/messages. The sender is
// always the authenticated user.
type CreateMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
	Language   string `json:"language"`
}

// CreateCallRequest is the body of POST /api/calls.
type CreateCallRequest struct {
	ReceiverID string   `json:"receiverId"`
	Type       CallType `json:"type"`
}

// CreateStoryRequest is the body of POST /api/stories. TTL defaults to 24h
// when zero.
type CreateStoryRequest struct {
	MediaPath string        `json:"mediaPath"`
	TTL       time.Duration `json:"ttl,omitempty"`
}

// PushTokenRequest is the body of PUT /api/user/push-token. An empty token
// unregisters the device.
type PushTokenRequest struct {
	Token string `json:"token"`
}

// ErrorResponse is the JSON error body written by the HTTP layer.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
