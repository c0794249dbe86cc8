// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/marquee/internal/backend"
	"github.com/tomtom215/marquee/internal/omdb"
	"github.com/tomtom215/marquee/internal/validation"
)

// Client-facing messages shared by several handlers.
const (
	msgInternalError       = "Internal server error"
	msgAuthRequired        = "Authentication required"
	msgInvalidCredentials  = "Invalid credentials"
	msgTooManyRequests     = "Too many requests"
	msgBackendUnavailable  = "Media backend unavailable"
	msgOMDBUnavailable     = "OMDB service unavailable"
	msgInvalidRequestBody  = "Invalid request body"
	msgMultipartRequired   = "Form data is required"
	msgMediaNotFound       = "Media not found"
	msgCategoryNotFound    = "Category not found"
	msgOMDBNotConfigured   = "OMDB API key not configured"
	msgInvalidIMDBID       = "Invalid IMDB ID format"
	msgSearchQueryRequired = "Search query is required"
	msgStreamTokenMissing  = "Missing access token"
	msgStreamTokenInvalid  = "Invalid access token"
	msgStreamTokenExpired  = "Token expired"
	msgInvalidVideoURL     = "Invalid video URL"
	msgDomainNotAllowed    = "Domain not allowed"
	msgVideoNotFound       = "Video not found"
	msgStreamUnavailable   = "Failed to stream video"
)

// ErrMultipartRequired is returned by the form parsers for bodies that are
// not multipart/form-data.
var ErrMultipartRequired = errors.New("multipart form data required")

// respondBackendError maps a backend client error onto the envelope.
//
// Pass-through statuses keep the backend's code and summarized message.
// Transport failures, an open circuit and malformed bodies become 502.
// notFound replaces the message for 404s when set.
func respondBackendError(rw *ResponseWriter, err error, notFound string) {
	var se *backend.StatusError
	switch {
	case errors.As(err, &se):
		if se.StatusCode == http.StatusNotFound && notFound != "" {
			rw.NotFound(notFound)
			return
		}
		rw.ExternalServiceError(se.StatusCode, "backend", se.Message, err)
	default:
		rw.ExternalServiceError(http.StatusBadGateway, "backend", msgBackendUnavailable, err)
	}
}

// respondOMDBError maps an OMDB client error onto the envelope.
func respondOMDBError(rw *ResponseWriter, err error) {
	var (
		nf *omdb.NotFoundError
		se *omdb.StatusError
	)
	switch {
	case errors.Is(err, omdb.ErrInvalidID):
		rw.BadRequest(msgInvalidIMDBID)
	case errors.Is(err, omdb.ErrNotConfigured):
		rw.InternalError(msgOMDBNotConfigured)
	case errors.As(err, &nf):
		rw.NotFound(nf.Message)
	case errors.Is(err, omdb.ErrUnavailable):
		rw.ExternalServiceError(http.StatusBadGateway, "omdb", msgOMDBUnavailable, err)
	case errors.As(err, &se):
		rw.ExternalServiceError(se.StatusCode, "omdb", se.Error(), err)
	default:
		rw.ExternalServiceError(http.StatusBadGateway, "omdb", msgOMDBUnavailable, err)
	}
}

// respondValidationError writes a VALIDATION_FAILED envelope.
func respondValidationError(rw *ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
}

// respondFormError maps a multipart parsing or form validation failure.
func respondFormError(rw *ResponseWriter, err error) {
	var (
		verr     *validation.RequestValidationError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		respondValidationError(rw, verr)
	case errors.Is(err, ErrMultipartRequired):
		rw.BadRequest(msgMultipartRequired)
	case errors.As(err, &tooLarge):
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large")
	default:
		rw.BadRequest(msgInvalidRequestBody)
	}
}
