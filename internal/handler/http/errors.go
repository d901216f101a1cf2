// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware and the request
// decoders. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request carries neither an "Authorization" header nor, on the
	// stream route, a token query parameter.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidJSON is returned for request bodies that do not decode.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidSignature is returned for webhook bodies whose HashSHA256
	// header is missing or wrong.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrWebhooksDisabled is returned when no webhook key is configured.
	ErrWebhooksDisabled = errors.New("webhooks are not configured")

	// ErrUnknownEventType is returned for identity events that are neither
	// created nor deleted.
	ErrUnknownEventType = errors.New("unknown event type")
)
