// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/marquee/internal/backend"
	"github.com/tomtom215/marquee/internal/omdb"
	"github.com/tomtom215/marquee/internal/validation"
)

func TestRespondBackendError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		notFound string
		status   int
		code     string
		message  string
	}{
		{
			name:     "not found with message",
			err:      &backend.StatusError{StatusCode: http.StatusNotFound, Message: "The requested resource wasn't found."},
			notFound: "Media not found",
			status:   http.StatusNotFound,
			code:     ErrCodeNotFound,
			message:  "Media not found",
		},
		{
			name:    "not found without message passes through",
			err:     &backend.StatusError{StatusCode: http.StatusNotFound, Message: "The requested resource wasn't found."},
			status:  http.StatusNotFound,
			code:    ErrCodeExternalServiceFail,
			message: "The requested resource wasn't found.",
		},
		{
			name:    "validation error passes through",
			err:     fmt.Errorf("create media: %w", &backend.StatusError{StatusCode: http.StatusBadRequest, Message: "title: cannot be blank"}),
			status:  http.StatusBadRequest,
			code:    ErrCodeExternalServiceFail,
			message: "title: cannot be blank",
		},
		{
			name:    "forbidden passes through",
			err:     &backend.StatusError{StatusCode: http.StatusForbidden, Message: "Only superusers can perform this action."},
			status:  http.StatusForbidden,
			code:    ErrCodeExternalServiceFail,
			message: "Only superusers can perform this action.",
		},
		{
			name:    "unavailable",
			err:     fmt.Errorf("%w: connection refused", backend.ErrUnavailable),
			status:  http.StatusBadGateway,
			code:    ErrCodeExternalServiceFail,
			message: "Media backend unavailable",
		},
		{
			name:    "malformed",
			err:     backend.ErrMalformedResponse,
			status:  http.StatusBadGateway,
			code:    ErrCodeExternalServiceFail,
			message: "Media backend unavailable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			rw := NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			respondBackendError(rw, tt.err, tt.notFound)
			expectError(t, rec, tt.status, tt.code, tt.message)
		})
	}
}

func TestRespondOMDBError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"invalid id", fmt.Errorf("%w: %q", omdb.ErrInvalidID, "x"), http.StatusBadRequest, ErrCodeBadRequest, "Invalid IMDB ID format"},
		{"not configured", omdb.ErrNotConfigured, http.StatusInternalServerError, ErrCodeInternalError, "OMDB API key not configured"},
		{"not found", &omdb.NotFoundError{Message: "Movie not found!"}, http.StatusNotFound, ErrCodeNotFound, "Movie not found!"},
		{"unavailable", fmt.Errorf("%w: timeout", omdb.ErrUnavailable), http.StatusBadGateway, ErrCodeExternalServiceFail, "OMDB service unavailable"},
		{"status", &omdb.StatusError{StatusCode: http.StatusServiceUnavailable}, http.StatusServiceUnavailable, ErrCodeExternalServiceFail, ""},
		{"unknown", errors.New("decode OMDB response: EOF"), http.StatusBadGateway, ErrCodeExternalServiceFail, "OMDB service unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			rw := NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			respondOMDBError(rw, tt.err)
			expectError(t, rec, tt.status, tt.code, tt.message)
		})
	}
}

func TestRespondFormError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validation.NewFieldError("sort_order", "number", "sort_order must be a whole number"), http.StatusBadRequest, ErrCodeValidationFailed},
		{"not multipart", ErrMultipartRequired, http.StatusBadRequest, ErrCodeBadRequest},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, ErrCodeBadRequest},
		{"other", errors.New("multipart: NextPart: EOF"), http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			rw := NewResponseWriter(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			respondFormError(rw, tt.err)
			expectError(t, rec, tt.status, tt.code, "")
		})
	}
}
