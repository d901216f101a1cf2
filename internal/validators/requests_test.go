package validators

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidator(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantField string
	}{
		{name: "credentials ok", input: models.Credentials{Email: "a@b.io", Password: "secret1"}},
		{name: "credentials pointer ok", input: &models.Credentials{Email: "a@b.io", Password: "secret1"}},
		{name: "bad email", input: models.Credentials{Email: "nope", Password: "secret1"}, wantField: "email"},
		{name: "short password", input: models.Credentials{Email: "a@b.io", Password: "123"}, wantField: "password"},

		{name: "google ok", input: models.ProviderCredential{ProviderID: models.ProviderGoogle, IDToken: "t"}},
		{name: "facebook ok", input: models.ProviderCredential{ProviderID: models.ProviderFacebook, AccessToken: "t"}},
		{name: "unknown provider", input: models.ProviderCredential{ProviderID: "github.com", IDToken: "t"}, wantField: "providerId"},
		{name: "provider without token", input: models.ProviderCredential{ProviderID: models.ProviderGoogle}, wantField: "idToken"},

		{name: "patch ok", input: models.ProfilePatch{DisplayName: "Bob", ProfileDetails: models.ProfileDetails{Website: "https://bob.dev", Birthdate: "1990-01-31"}}},
		{name: "patch bad website", input: models.ProfilePatch{ProfileDetails: models.ProfileDetails{Website: "ftp://bob"}}, wantField: "website"},
		{name: "patch bad photo", input: models.ProfilePatch{PhotoURL: "not a url"}, wantField: "photoURL"},
		{name: "patch bad birthdate", input: models.ProfilePatch{ProfileDetails: models.ProfileDetails{Birthdate: "31.01.1990"}}, wantField: "birthdate"},
		{name: "patch long name", input: models.ProfilePatch{DisplayName: strings.Repeat("x", 65)}, wantField: "displayName"},

		{name: "message ok", input: models.CreateMessageRequest{ReceiverID: "u2", Text: "hi", Language: "en"}},
		{name: "message no receiver", input: models.CreateMessageRequest{Text: "hi"}, wantField: "receiverId"},
		{name: "message no text", input: models.CreateMessageRequest{ReceiverID: "u2"}, wantField: "text"},
		{name: "message bad language", input: models.CreateMessageRequest{ReceiverID: "u2", Text: "hi", Language: "??"}, wantField: "language"},

		{name: "call ok", input: models.CreateCallRequest{ReceiverID: "u2", Type: models.CallVideo}},
		{name: "call bad type", input: models.CreateCallRequest{ReceiverID: "u2", Type: "hologram"}, wantField: "type"},

		{name: "story ok", input: models.CreateStoryRequest{MediaPath: "stories/u1/a.jpg", TTL: time.Hour}},
		{name: "story no media", input: models.CreateStoryRequest{}, wantField: "mediaPath"},
		{name: "story long ttl", input: models.CreateStoryRequest{MediaPath: "a", TTL: 30 * 24 * time.Hour}, wantField: "ttl"},
	}

	v := NewRequestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.wantField, fieldOf(t, err))
		})
	}
}

func TestRequestValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewRequestValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}
