package models

// DefaultAvatar is used as notification icon when the sender has no photo.
const DefaultAvatar = "/default-avatar.png"

// Notification type values carried in PushMessage.Data["type"].
const (
	NotificationTypeMessage = "message"
	NotificationTypeCall    = "call"
)

// Notification is the visible part of a push message.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
}

// PushMessage is a single push delivery to one device token.
type PushMessage struct {
	Token        string            `json:"to"`
	Notification Notification      `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}
