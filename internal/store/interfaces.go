package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-chat-core/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// ProfileRepository persists user profiles in the "users" table.
type ProfileRepository interface {
	// Create inserts p unless a profile with the same uid exists. created
	// reports whether a row was written.
	Create(ctx context.Context, p models.UserProfile) (created bool, err error)

	// Get returns the profile or ErrProfileNotFound.
	Get(ctx context.Context, uid string) (models.UserProfile, error)

	// Update locks the row, passes the current profile to mutate and writes
	// back the user-editable columns. If mutate fails nothing is written.
	Update(ctx context.Context, uid string, mutate func(p *models.UserProfile) error) (models.UserProfile, error)

	// SetPresence sets status and, when lastLogin is non-zero, last_login.
	SetPresence(ctx context.Context, uid string, status models.PresenceStatus, lastLogin time.Time) error

	// Delete removes the profile. Deleting a missing profile is not an error.
	Delete(ctx context.Context, uid string) error
}

// MessageRepository persists messages. Translations are only ever appended.
type MessageRepository interface {
	Create(ctx context.Context, m models.Message) error
	Get(ctx context.Context, id string) (models.Message, error)
	AppendTranslation(ctx context.Context, id, lang, text string) error
}

// CallRepository persists call signaling records.
type CallRepository interface {
	Create(ctx context.Context, c models.Call) error
	Get(ctx context.Context, id string) (models.Call, error)
}

// StoryRepository persists expiring stories.
type StoryRepository interface {
	Create(ctx context.Context, s models.Story) error
	// DeleteExpired removes stories whose expires_at is at or before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ProfileCache is a read-through cache in front of ProfileRepository.
type ProfileCache interface {
	Get(ctx context.Context, uid string) (models.UserProfile, error)
	Set(ctx context.Context, p models.UserProfile) error
	Delete(ctx context.Context, uid string) error
}

// Deduplicator remembers processed event keys.
type Deduplicator interface {
	// FirstSeen atomically records key and reports whether it was new.
	FirstSeen(ctx context.Context, key string) (bool, error)

	// Forget drops key so that a failed step runs again on redelivery.
	Forget(ctx context.Context, key string) error
}

// TokenRevoker tracks revoked session tokens by their "jti" claim.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ObjectStorage is the media bucket.
type ObjectStorage interface {
	Get(ctx context.Context, name string) (io.ReadCloser, models.StoredObject, error)
	Put(ctx context.Context, name, contentType string, body io.ReadSeeker) error
	List(ctx context.Context, prefix string) ([]models.StoredObject, error)
	Delete(ctx context.Context, name string) error
}

// SessionStore keeps the client's session token between runs.
type SessionStore interface {
	Save(ctx context.Context, s LocalSession) error
	Load(ctx context.Context) (LocalSession, error)
	Clear(ctx context.Context) error
}

// LocalSession is the persisted client session.
type LocalSession struct {
	UID     string
	Token   string
	SavedAt time.Time
}
