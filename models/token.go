package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a session JWT with convenience accessors.
//
// It embeds [jwt.Token] for low-level operations and [jwt.RegisteredClaims]
// for claim access, so a *Token can be passed directly to
// jwt.ParseWithClaims. The subject claim carries the profile uid and the
// "jti" claim identifies the token for revocation.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// UID is the cached subject claim.
	UID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// TTL returns how long the token remains valid relative to now. Expired or
// non-expiring tokens yield zero.
func (t *Token) TTL(now time.Time) time.Duration {
	if t.ExpiresAt == nil {
		return 0
	}
	ttl := t.ExpiresAt.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}
