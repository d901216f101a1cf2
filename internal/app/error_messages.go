// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// chat server handlers and middleware.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies for failures detected before a request reaches a service.
package app

const (
	// MsgIdentityUIDRequired is returned when an identity webhook carries no
	// identity uid.
	MsgIdentityUIDRequired = "identity uid is required"

	// MsgObjectNameRequired is returned when a storage webhook names no
	// object.
	MsgObjectNameRequired = "object name is required"

	// MsgErrorReadingBody is returned when a signed request body cannot be
	// read in full.
	MsgErrorReadingBody = "error reading body"
)
