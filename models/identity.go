package models

// Provider identifiers accepted by provider sign-in.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google.com"
	ProviderFacebook = "facebook.com"
)

// Identity is an account as known to the external identity provider.
// It is the payload of identity created/deleted events.
type Identity struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoURL,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	ProviderID    string `json:"providerId,omitempty"`
}

// IdentityEventType distinguishes identity lifecycle events.
type IdentityEventType string

const (
	IdentityCreated IdentityEventType = "created"
	IdentityDeleted IdentityEventType = "deleted"
)

// IdentityEvent is the webhook body delivered by the identity provider.
type IdentityEvent struct {
	Type     IdentityEventType `json:"type"`
	Identity Identity          `json:"identity"`
}

// Credentials is the email/password pair used by sign-in and sign-up.
// DisplayName is only used by sign-up.
type Credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// ProviderCredential is an OAuth credential obtained from a federated
// provider by the client.
type ProviderCredential struct {
	ProviderID  string `json:"providerId"`
	IDToken     string `json:"idToken,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

// AuthResult is returned by every successful sign-in or sign-up.
type AuthResult struct {
	Token   string      `json:"token"`
	Profile UserProfile `json:"profile"`
}
