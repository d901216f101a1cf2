// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

// SealedPrefix marks values produced by Seal.
const SealedPrefix = "sealed:v1:"

const (
	keySize   = 32
	nonceSize = 24

	// Argon2id parameters for deriving the sealing key from the deployment
	// passphrase. The key is derived once per process.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// argonSalt domain-separates the sealing key from other uses of the same
// passphrase.
var argonSalt = []byte("go-chat-core/secret-sealer/v1")

var (
	ErrEmptyPassphrase = errors.New("sealer passphrase is empty")
	ErrMalformedSealed = errors.New("malformed sealed value")
	ErrOpenFailed      = errors.New("sealed value cannot be opened")
)

// SecretSealer implements [Sealer] with NaCl secretbox
// (XSalsa20-Poly1305). The blob layout is nonce ‖ box, base64url encoded
// after SealedPrefix.
type SecretSealer struct {
	key [keySize]byte
}

// NewSecretSealer derives the sealing key from passphrase with Argon2id.
func NewSecretSealer(passphrase string) (*SecretSealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	s := &SecretSealer{}
	copy(s.key[:], argon2.IDKey([]byte(passphrase), argonSalt, argonTime, argonMemory, argonThreads, keySize))
	return s, nil
}

// NewEphemeralSealer uses a random key. Values it seals cannot be opened
// after a restart.
func NewEphemeralSealer() (*SecretSealer, error) {
	s := &SecretSealer{}
	if _, err := io.ReadFull(rand.Reader, s.key[:]); err != nil {
		return nil, fmt.Errorf("generate sealer key: %w", err)
	}
	return s, nil
}

// Seal implements [Sealer].
func (s *SecretSealer) Seal(plaintext string) (string, error) {
	if IsSealed(plaintext) {
		return plaintext, nil
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// nonce is prepended so Open can split it out
	blob := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return SealedPrefix + base64.RawURLEncoding.EncodeToString(blob), nil
}

// Open implements [Sealer].
func (s *SecretSealer) Open(sealed string) (string, error) {
	if !IsSealed(sealed) {
		return sealed, nil
	}

	blob, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(sealed, SealedPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedSealed, err)
	}
	if len(blob) < nonceSize+secretbox.Overhead {
		return "", ErrMalformedSealed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], blob[:nonceSize])

	plaintext, ok := secretbox.Open(nil, blob[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrOpenFailed
	}
	return string(plaintext), nil
}

// IsSealed reports whether v carries SealedPrefix.
func IsSealed(v string) bool {
	return strings.HasPrefix(v, SealedPrefix)
}

// GenerateAPIKey returns 32 random bytes as lowercase hex. Every new profile
// gets one.
func GenerateAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
