package models

import "time"

// Message is a chat message written by the messaging collaborator. The
// pipeline in this service only ever appends to Translations.
type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`

	// Language is the language tag the message was written in.
	Language string `json:"language"`

	// Translations maps a language tag to the translated text.
	Translations map[string]string `json:"translations"`

	CreatedAt time.Time `json:"createdAt"`
}

// CallType is the media type of a call.
type CallType string

const (
	CallAudio CallType = "audio"
	CallVideo CallType = "video"
)

// Call is a call signaling record. Read-only for this service apart from the
// notification it triggers.
type Call struct {
	ID         string    `json:"id"`
	CallerID   string    `json:"callerId"`
	ReceiverID string    `json:"receiverId"`
	Type       CallType  `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Story is an expiring media post. Stories are removed by the hourly sweep
// once ExpiresAt has passed.
type Story struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MediaPath string    `json:"mediaPath"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
