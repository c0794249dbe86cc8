// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent is an authentication event destined for the audit log.
type SecurityEvent struct {
	// Event is the event type, e.g. "auth.login.succeeded".
	Event string
	// UserID is the backend record id, when known.
	UserID string
	// Email is masked before it is written.
	Email string
	// IPAddress is the client address as seen after RealIP.
	IPAddress string
	// Success marks the outcome.
	Success bool
	// Reason is a short machine-readable cause for failures.
	Reason string
	// Details carries extra fields; values under sensitive keys are masked.
	Details map[string]string
}

// SecurityLogger writes SecurityEvents with sensitive fields masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger returns a SecurityLogger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger returns a SecurityLogger writing to logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogEvent writes the event. Failed events are logged at warn level.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	var e *zerolog.Event
	if event.Success {
		e = l.logger.Info().Str("status", "success")
	} else {
		e = l.logger.Warn().Str("status", "failed")
	}
	e = e.Str("event", event.Event)

	if event.UserID != "" {
		e = e.Str("user_id", SanitizeUserID(event.UserID))
	}
	if event.Email != "" {
		e = e.Str("email", MaskEmail(event.Email))
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Reason != "" {
		e = e.Str("reason", event.Reason)
	}
	for k, v := range event.Details {
		e = e.Str(k, SanitizeValue(k, v))
	}
	e.Msg("security event")
}

// MaskEmail keeps the first character of the local part and the domain.
// "alice@example.com" becomes "a***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		if email == "" {
			return ""
		}
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// SanitizeToken keeps the first and last four characters of long tokens.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeUserID truncates long identifiers; backend ids are short and kept.
func SanitizeUserID(id string) string {
	return truncate(id, 64)
}

// SanitizeValue masks values whose key suggests a secret.
func SanitizeValue(key, value string) string {
	k := strings.ToLower(key)
	for _, marker := range []string{"token", "secret", "password", "credential", "key"} {
		if strings.Contains(k, marker) {
			return SanitizeToken(value)
		}
	}
	if strings.Contains(k, "email") {
		return MaskEmail(value)
	}
	return truncate(value, 200)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
