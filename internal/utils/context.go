// Package utils provides general-purpose helpers shared by the server and
// the client: typed context keys, uuid generation, session JWTs, webhook
// HMAC signatures, JSON responses and the resty-based HTTP client.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UIDCtxKey stores the authenticated profile uid in a request context.
//
//	ctx := context.WithValue(ctx, utils.UIDCtxKey, "uid-123")
var UIDCtxKey = contextKey("uid")

// TokenIDCtxKey stores the "jti" claim of the token that authenticated the
// request. Sign-out uses it to revoke exactly that token.
var TokenIDCtxKey = contextKey("jti")

// GetUIDFromContext returns the profile uid stored under UIDCtxKey. ok is
// false when the value is missing, has another type or is empty.
func GetUIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UIDCtxKey).(string)
	return uid, ok && uid != ""
}

// GetTokenIDFromContext returns the token id stored under TokenIDCtxKey.
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	jti, ok := ctx.Value(TokenIDCtxKey).(string)
	return jti, ok && jti != ""
}

// WithUID returns a copy of ctx carrying uid and the token id.
func WithUID(ctx context.Context, uid, tokenID string) context.Context {
	ctx = context.WithValue(ctx, UIDCtxKey, uid)
	if tokenID != "" {
		ctx = context.WithValue(ctx, TokenIDCtxKey, tokenID)
	}
	return ctx
}
