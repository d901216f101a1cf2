// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/models"
)

// AccountService mirrors identity provider lifecycle events into profiles.
// Both handlers are idempotent under at-least-once delivery.
type AccountService interface {
	// OnIdentityCreated creates the profile unless it already exists and
	// returns the stored profile either way.
	OnIdentityCreated(ctx context.Context, identity models.Identity) (models.UserProfile, error)

	// OnIdentityDeleted removes the profile. Missing profiles are fine.
	OnIdentityDeleted(ctx context.Context, uid string) error
}

// ProfileService serves the signed-in user's own profile. Returned profiles
// never carry secrets in plaintext.
type ProfileService interface {
	GetProfile(ctx context.Context, uid string) (models.UserProfile, error)

	// UpdateSettings deep-merges patch into the stored settings under a row
	// lock. An invalid leaf leaves the row unchanged.
	UpdateSettings(ctx context.Context, uid string, patch models.SettingsPatch) (models.UserSettings, error)

	// UpdateProfile overwrites the non-empty fields of patch.
	UpdateProfile(ctx context.Context, uid string, patch models.ProfilePatch) (models.UserProfile, error)

	// SetPushToken registers the device token. An empty token unregisters.
	SetPushToken(ctx context.Context, uid, token string) error
}

// AuthService signs users in against the identity provider and issues
// session tokens.
type AuthService interface {
	SignUp(ctx context.Context, credentials models.Credentials) (models.AuthResult, error)
	SignIn(ctx context.Context, credentials models.Credentials) (models.AuthResult, error)

	// SignInWithProvider creates the profile on the first sign-in.
	SignInWithProvider(ctx context.Context, credential models.ProviderCredential) (models.AuthResult, error)

	// SignOut revokes token and marks the user offline.
	SignOut(ctx context.Context, token models.Token) error

	// ParseToken verifies tokenString and rejects revoked tokens.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ChatService performs the primary writes whose side effects run on the
// event bus.
type ChatService interface {
	CreateMessage(ctx context.Context, senderID string, req models.CreateMessageRequest) (models.Message, error)
	CreateCall(ctx context.Context, callerID string, req models.CreateCallRequest) (models.Call, error)
	CreateStory(ctx context.Context, uid string, req models.CreateStoryRequest) (models.Story, error)
}

// MessagePipeline holds the two independent message.created subscribers.
// Failures are logged and never reach the message writer.
type MessagePipeline interface {
	Translate(ctx context.Context, msg models.Message) error
	Notify(ctx context.Context, msg models.Message) error
}

// CallNotifier is the call.created subscriber.
type CallNotifier interface {
	Notify(ctx context.Context, call models.Call) error
}

// MediaService derives thumbnails of finalized uploads.
type MediaService interface {
	OnObjectFinalized(ctx context.Context, obj models.StoredObject) error
}

// Janitor removes stale temp uploads and expired stories.
type Janitor interface {
	// SweepTempObjects deletes temp/ objects created more than the max age
	// before now and returns how many were deleted.
	SweepTempObjects(ctx context.Context, now time.Time) (int, error)

	SweepExpiredStories(ctx context.Context, now time.Time) (int64, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// EventPublisher is the publishing side of [events.Bus].
type EventPublisher interface {
	Publish(ctx context.Context, topic events.Topic, id string, payload any) error
}

// AuthServiceWrapper, ProfileServiceWrapper and ChatServiceWrapper decorate
// a service with extra behavior such as request validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

type ProfileServiceWrapper interface {
	Wrap(ProfileService) ProfileService
}

type ChatServiceWrapper interface {
	Wrap(ChatService) ChatService
}
