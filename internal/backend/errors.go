// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package backend

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

var (
	// ErrInvalidCredentials is returned by AuthWithPassword when the backend
	// rejects the identity/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMalformedResponse means a 2xx body did not match the expected schema.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrUnavailable covers transport failures and an open circuit breaker.
	ErrUnavailable = errors.New("backend unavailable")
)

// StatusError is a non-2xx backend response. Message is a summary suitable
// for clients; the raw body is never included.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// errorBody is PocketBase's error envelope.
type errorBody struct {
	Code    int                        `json:"code"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

type fieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// summarizeError prefers the top-level message, then "field: message" pairs
// from data, then the HTTP status text.
func summarizeError(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if len(eb.Data) > 0 {
			fields := make([]string, 0, len(eb.Data))
			for name := range eb.Data {
				fields = append(fields, name)
			}
			sort.Strings(fields)

			parts := make([]string, 0, len(fields))
			for _, name := range fields {
				parts = append(parts, name+": "+fieldMessage(eb.Data[name]))
			}
			return strings.Join(parts, ", ")
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "request failed"
}

func fieldMessage(raw json.RawMessage) string {
	var fe fieldError
	if err := json.Unmarshal(raw, &fe); err == nil && fe.Message != "" {
		return fe.Message
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	return "invalid value"
}
