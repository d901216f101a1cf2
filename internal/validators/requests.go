package validators

import (
	"context"
	"net/mail"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-chat-core/models"
)

const (
	minPasswordLength = 6
	maxDisplayName    = 64
	maxBioLength      = 500
	maxMessageLength  = 4096
	maxStoryTTL       = 7 * 24 * time.Hour
)

// RequestValidator validates inbound API payloads.
type RequestValidator struct {
}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value)
	case *models.Credentials:
		return v.validateCredentials(*value)

	case models.ProviderCredential:
		return v.validateProviderCredential(value)
	case *models.ProviderCredential:
		return v.validateProviderCredential(*value)

	case models.ProfilePatch:
		return v.validateProfilePatch(value)
	case *models.ProfilePatch:
		return v.validateProfilePatch(*value)

	case models.CreateMessageRequest:
		return v.validateMessage(value)
	case *models.CreateMessageRequest:
		return v.validateMessage(*value)

	case models.CreateCallRequest:
		return v.validateCall(value)
	case *models.CreateCallRequest:
		return v.validateCall(*value)

	case models.CreateStoryRequest:
		return v.validateStory(value)
	case *models.CreateStoryRequest:
		return v.validateStory(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateCredentials(c models.Credentials) error {
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return invalid("email", "is not a valid address")
	}
	if utf8.RuneCountInString(c.Password) < minPasswordLength {
		return invalid("password", "must be at least 6 characters")
	}
	if utf8.RuneCountInString(c.DisplayName) > maxDisplayName {
		return invalid("displayName", "is too long")
	}
	return nil
}

func (v *RequestValidator) validateProviderCredential(c models.ProviderCredential) error {
	switch c.ProviderID {
	case models.ProviderGoogle, models.ProviderFacebook:
	default:
		return invalid("providerId", "unsupported provider")
	}
	if c.IDToken == "" && c.AccessToken == "" {
		return invalid("idToken", "an id token or access token is required")
	}
	return nil
}

func (v *RequestValidator) validateProfilePatch(p models.ProfilePatch) error {
	if utf8.RuneCountInString(p.DisplayName) > maxDisplayName {
		return invalid("displayName", "is too long")
	}
	if utf8.RuneCountInString(p.Bio) > maxBioLength {
		return invalid("bio", "is too long")
	}
	if p.PhotoURL != "" && !isHTTPURL(p.PhotoURL) {
		return invalid("photoURL", "must be an http(s) URL")
	}
	if p.Website != "" && !isHTTPURL(p.Website) {
		return invalid("website", "must be an http(s) URL")
	}
	if p.Birthdate != "" {
		if _, err := time.Parse(time.DateOnly, p.Birthdate); err != nil {
			return invalid("birthdate", "must be YYYY-MM-DD")
		}
	}
	return nil
}

func (v *RequestValidator) validateMessage(m models.CreateMessageRequest) error {
	if m.ReceiverID == "" {
		return invalid("receiverId", "is required")
	}
	if m.Text == "" {
		return invalid("text", "is required")
	}
	if utf8.RuneCountInString(m.Text) > maxMessageLength {
		return invalid("text", "is too long")
	}
	if m.Language != "" {
		return validateLanguage("language", m.Language)
	}
	return nil
}

func (v *RequestValidator) validateCall(c models.CreateCallRequest) error {
	if c.ReceiverID == "" {
		return invalid("receiverId", "is required")
	}
	switch c.Type {
	case models.CallAudio, models.CallVideo:
	default:
		return invalid("type", "must be audio or video")
	}
	return nil
}

func (v *RequestValidator) validateStory(s models.CreateStoryRequest) error {
	if s.MediaPath == "" {
		return invalid("mediaPath", "is required")
	}
	if s.TTL < 0 || s.TTL > maxStoryTTL {
		return invalid("ttl", "must be between 0 and 7 days")
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
