// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"errors"
	"testing"
)

// base64("0123456789abcdef0123456789abcdef")
const testSealKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func TestNewCredentialSealer(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		wantEnabled bool
		wantErr     bool
	}{
		{name: "empty key disables sealing", key: ""},
		{name: "valid key", key: testSealKey, wantEnabled: true},
		{name: "not base64", key: "%%%not-base64%%%", wantErr: true},
		{name: "too short", key: "c2hvcnQ=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewCredentialSealer(tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrSealKeyInvalid) {
					t.Fatalf("NewCredentialSealer() error = %v, want ErrSealKeyInvalid", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCredentialSealer() error = %v", err)
			}
			if s.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", s.Enabled(), tt.wantEnabled)
			}
		})
	}
}

func TestCredentialSealerSealOpen(t *testing.T) {
	s, err := NewCredentialSealer(testSealKey)
	if err != nil {
		t.Fatalf("NewCredentialSealer() error = %v", err)
	}

	sealed, err := s.Seal("backend-token")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if sealed == "backend-token" {
		t.Fatal("Seal() returned plaintext")
	}

	again, _ := s.Seal("backend-token")
	if again == sealed {
		t.Error("Seal() should use a fresh nonce each call")
	}

	opened, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if opened != "backend-token" {
		t.Errorf("Open() = %q, want backend-token", opened)
	}
}

func TestCredentialSealerOpenErrors(t *testing.T) {
	s, _ := NewCredentialSealer(testSealKey)
	sealed, _ := s.Seal("backend-token")
	flipped := []byte(sealed)
	if flipped[20] == 'A' {
		flipped[20] = 'B'
	} else {
		flipped[20] = 'A'
	}

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not base64", "***", ErrSealedMalformed},
		{"too short", "AAAA", ErrSealedMalformed},
		{"modified ciphertext", string(flipped), ErrUnsealFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Open(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("Open() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNilSealerPassesThrough(t *testing.T) {
	var s *CredentialSealer
	sealed, err := s.Seal("plain")
	if err != nil || sealed != "plain" {
		t.Errorf("Seal() = %q, %v", sealed, err)
	}
	opened, err := s.Open("plain")
	if err != nil || opened != "plain" {
		t.Errorf("Open() = %q, %v", opened, err)
	}
}
