package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chat-core/internal/store"
)

var (
	// ErrNotFound is matched by every error about a missing profile, message,
	// call or object. The storage error stays wrapped for logs.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the caller may not act on the
	// addressed resource.
	ErrPermissionDenied = errors.New("permission denied")

	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	// ErrNotSignedIn is returned by client session operations that need a user.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrQuotaExceeded is returned when a user has used up the server paid
	// translations of the current window.
	ErrQuotaExceeded = errors.New("translation quota exceeded")

	// ErrObjectStorageDisabled is returned by media operations when no bucket
	// is configured.
	ErrObjectStorageDisabled = errors.New("object storage is not configured")
)

// mapStoreError turns storage not-found errors into ErrNotFound. Other errors
// are returned unchanged.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrMessageNotFound),
		errors.Is(err, store.ErrCallNotFound),
		errors.Is(err, store.ErrObjectNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}
