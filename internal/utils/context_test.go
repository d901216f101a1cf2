// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestUIDCtxKey(t *testing.T) {
	if UIDCtxKey.String() != "uid" {
		t.Errorf("expected 'uid', got '%s'", UIDCtxKey.String())
	}
}

func TestGetUIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), UIDCtxKey, "uid-42")

	uid, ok := GetUIDFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if uid != "uid-42" {
		t.Errorf("expected uid-42, got %s", uid)
	}
}

func TestGetUIDFromContext_Missing(t *testing.T) {
	uid, ok := GetUIDFromContext(context.Background())
	if ok {
		t.Error("expected ok=false for missing key")
	}
	if uid != "" {
		t.Errorf("expected empty uid, got %s", uid)
	}
}

func TestGetUIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UIDCtxKey, int64(42))

	if _, ok := GetUIDFromContext(ctx); ok {
		t.Error("expected ok=false for non-string value")
	}
}

func TestGetUIDFromContext_Empty(t *testing.T) {
	ctx := context.WithValue(context.Background(), UIDCtxKey, "")

	if _, ok := GetUIDFromContext(ctx); ok {
		t.Error("expected ok=false for empty uid")
	}
}

func TestGetUIDFromContext_PlainStringKeyDoesNotCollide(t *testing.T) {
	//nolint:staticcheck // deliberately using a plain string key
	ctx := context.WithValue(context.Background(), "uid", "uid-1")

	if _, ok := GetUIDFromContext(ctx); ok {
		t.Error("plain string key must not be visible through UIDCtxKey")
	}
}

func TestWithUID(t *testing.T) {
	ctx := WithUID(context.Background(), "uid-7", "jti-7")

	uid, ok := GetUIDFromContext(ctx)
	if !ok || uid != "uid-7" {
		t.Fatalf("expected uid-7, got %q (ok=%v)", uid, ok)
	}

	jti, ok := GetTokenIDFromContext(ctx)
	if !ok || jti != "jti-7" {
		t.Fatalf("expected jti-7, got %q (ok=%v)", jti, ok)
	}
}

func TestWithUID_NoTokenID(t *testing.T) {
	ctx := WithUID(context.Background(), "uid-7", "")

	if _, ok := GetTokenIDFromContext(ctx); ok {
		t.Error("expected no token id")
	}
}
