// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Credential sealing errors.
var (
	ErrSealKeyInvalid  = errors.New("credential key invalid")
	ErrUnsealFailed    = errors.New("credential unseal failed")
	ErrSealedMalformed = errors.New("sealed credential malformed")
)

// HKDF info string; changing it invalidates every outstanding session.
var credentialSealerCtx = []byte("marquee-session-credential")

// CredentialSealer encrypts the delegated backend credential before it is
// embedded in a session token. A nil *CredentialSealer passes values through
// unchanged, so callers never branch on whether sealing is enabled.
type CredentialSealer struct {
	aead cipher.AEAD
}

// NewCredentialSealer builds a sealer from a base64 master key of at least 16
// bytes. An empty key returns (nil, nil): sealing disabled.
func NewCredentialSealer(masterKey string) (*CredentialSealer, error) {
	if masterKey == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(masterKey)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrSealKeyInvalid, err)
	}
	if len(raw) < 16 {
		return nil, fmt.Errorf("%w: must be at least 16 bytes", ErrSealKeyInvalid)
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, raw, nil, credentialSealerCtx), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM cipher: %w", err)
	}
	return &CredentialSealer{aead: aead}, nil
}

// Enabled reports whether values are actually encrypted.
func (s *CredentialSealer) Enabled() bool {
	return s != nil && s.aead != nil
}

// Seal returns base64(nonce || ciphertext).
func (s *CredentialSealer) Seal(plaintext string) (string, error) {
	if !s.Enabled() || plaintext == "" {
		return plaintext, nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString(s.aead.Seal(nonce, nonce, []byte(plaintext), nil)), nil
}

// Open reverses Seal.
func (s *CredentialSealer) Open(sealed string) (string, error) {
	if !s.Enabled() || sealed == "" {
		return sealed, nil
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode failed", ErrSealedMalformed)
	}
	n := s.aead.NonceSize()
	if len(data) < n+1+s.aead.Overhead() {
		return "", fmt.Errorf("%w: data too short", ErrSealedMalformed)
	}

	plaintext, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", ErrUnsealFailed
	}
	return string(plaintext), nil
}
