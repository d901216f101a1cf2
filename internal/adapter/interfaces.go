// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound integrations of go-chat-core.
//
// Server side it wraps the managed identity provider ([IdentityProvider]),
// push delivery ([PushSender]) and machine translation ([Translator]). Client
// side [ServerAdapter] talks to the chat server REST API and
// [ProfileWatcher] follows the profile stream over a websocket.
//
// Every HTTP integration is built on resty. Non-2xx responses are mapped by
// mapHTTPError to an [UpstreamError] wrapping one of the status sentinels in
// errors.go, so callers can match either the status ([ErrConflict],
// [ErrUnauthorized], ...) or the category ([ErrUpstream]) with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-chat-core/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityProvider is the managed authentication service.
type IdentityProvider interface {
	// SignUp creates an email/password account. DisplayName is applied to
	// the new account when set.
	SignUp(ctx context.Context, creds models.Credentials) (models.Identity, error)

	// SignIn verifies an email/password pair. Wrong credentials yield
	// [ErrInvalidCredentials].
	SignIn(ctx context.Context, email, password string) (models.Identity, error)

	// SignInWithIdp exchanges a federated provider credential for an
	// identity, creating the account on first use.
	SignInWithIdp(ctx context.Context, cred models.ProviderCredential) (models.Identity, error)
}

// PushSender delivers a push notification to one device.
type PushSender interface {
	// Send returns [ErrInvalidPushToken] when the provider rejected the
	// device token.
	Send(ctx context.Context, msg models.PushMessage) error
}

// Translator translates text with the machine translation service.
type Translator interface {
	// Translate returns text translated into the target language. A
	// non-empty apiKey replaces the configured server key for this call.
	Translate(ctx context.Context, text, target, apiKey string) (string, error)
}

// ServerAdapter is the terminal client's view of the chat server REST API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token or "".
	Token() string

	// SignUp, SignIn and SignInWithProvider store the returned token.
	SignUp(ctx context.Context, creds models.Credentials) (models.AuthResult, error)
	SignIn(ctx context.Context, creds models.Credentials) (models.AuthResult, error)
	SignInWithProvider(ctx context.Context, cred models.ProviderCredential) (models.AuthResult, error)

	// SignOut revokes the token on the server. The local token is dropped
	// even when the request fails.
	SignOut(ctx context.Context) error

	GetProfile(ctx context.Context) (models.UserProfile, error)
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.UserSettings, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.UserProfile, error)
	RegisterPushToken(ctx context.Context, token string) error
	Version(ctx context.Context) (string, error)
}

// ProfileWatcher follows server pushed profile updates.
type ProfileWatcher interface {
	// Watch calls onUpdate for every profile received until ctx is done or
	// the connection drops. It returns nil when ctx was cancelled.
	Watch(ctx context.Context, token string, onUpdate func(models.UserProfile)) error
}
