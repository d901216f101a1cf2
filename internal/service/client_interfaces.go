package service

import (
	"context"

	"github.com/MKhiriev/go-chat-core/models"
)

// ClientSession is the client-side auth session. Every operation moves the
// observable [models.SessionState] through loading and then into either the
// signed-in user or an error message.
type ClientSession interface {
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password, displayName string) error
	SignInWithProvider(ctx context.Context, credential models.ProviderCredential) error
	SignInWithGoogle(ctx context.Context, idToken string) error
	SignInWithFacebook(ctx context.Context, accessToken string) error

	// SignOut always ends signed out, even when the server call fails.
	SignOut(ctx context.Context) error

	// UpdateSettings fails with ErrNotSignedIn when nobody is signed in.
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) error
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) error

	// Restore resumes the session saved by a previous run. Having nothing
	// saved is not an error.
	Restore(ctx context.Context) error

	State() models.SessionState

	// Subscribe calls fn with the current state and then with every change,
	// one call at a time. The returned function unsubscribes and may be
	// called more than once.
	Subscribe(fn func(models.SessionState)) (unsubscribe func())

	Close()
}

// ClientAppInfoService reports the server's version to the client.
type ClientAppInfoService interface {
	ServerVersion(ctx context.Context) (string, error)
}
