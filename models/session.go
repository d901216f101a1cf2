package models

// SessionState is the observable state of a client auth session.
//
// User is nil while unauthenticated. Loading is true while a transition is in
// flight. Error holds the message of the last failed transition and is reset
// at the start of every new one.
type SessionState struct {
	User    *UserProfile
	Loading bool
	Error   string
}

// Authenticated reports whether a user is signed in.
func (s SessionState) Authenticated() bool {
	return s.User != nil
}
