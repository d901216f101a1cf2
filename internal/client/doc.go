// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It resumes the persisted auth session, runs the terminal UI on top of the
// client session and closes the session, with its profile stream, on exit.
package client
