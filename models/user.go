package models

import "time"

// PresenceStatus is the coarse presence state shown to other users.
type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusOffline PresenceStatus = "offline"
	StatusAway    PresenceStatus = "away"
)

// Role is the authorization role of a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserProfile is the canonical per-user record. It is created by the account
// lifecycle when an identity appears and removed when the identity is deleted.
//
// Settings is always fully populated once the profile exists, so readers never
// have to check nested settings for missing values.
type UserProfile struct {
	// UID is the identity-provider assigned identifier. It is the primary key
	// and never changes after creation.
	UID string `json:"uid"`

	// Email, DisplayName and PhotoURL are sourced from the identity provider
	// and may later be edited by the user.
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`

	// EmailVerified mirrors the identity-provider flag at creation time.
	EmailVerified bool `json:"emailVerified"`

	Status PresenceStatus `json:"status"`
	Role   Role           `json:"role"`

	Settings UserSettings `json:"settings"`

	// CreatedAt is immutable. LastLogin is refreshed on every session start.
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`

	// Contacts and BlockedUsers hold uids. Order is irrelevant.
	Contacts     []string `json:"contacts"`
	BlockedUsers []string `json:"blockedUsers"`

	// APIKey is generated once at creation and never rotated by this service.
	APIKey string `json:"apiKey,omitempty"`

	// PushToken is the device token used for push notifications. Empty when
	// the user has no registered device.
	PushToken string `json:"fcmToken,omitempty"`

	ProfileDetails
}

// ProfileDetails holds optional free-form enrichment fields.
type ProfileDetails struct {
	Bio         string      `json:"bio,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Location    string      `json:"location,omitempty"`
	Birthdate   string      `json:"birthdate,omitempty"`
	Website     string      `json:"website,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// SocialLinks are user-supplied links to external social profiles.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// ProfilePatch carries the user-editable profile fields. Empty strings mean
// "leave unchanged".
type ProfilePatch struct {
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`

	ProfileDetails
}

// SenderName returns the display name used in notifications, falling back to
// the email when no display name was set.
func (u UserProfile) SenderName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
