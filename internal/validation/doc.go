// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides request validation using go-playground/validator v10.
//
// A single validator instance is built once with the custom tags the catalog
// needs and reports fields by their JSON/form names:
//
//	nohtmlinjection  rejects "<script", "javascript:" and "data:" (case-insensitive)
//	noscripttag      rejects "<script" only (embed snippets)
//	imdbid           "tt" followed by at least 7 digits
//	rgbhex           "#RRGGBB"
//	slug             lowercase letters, digits and hyphens
//	httpurl          absolute http:// or https:// URL with a host
//
// # Request Schemas
//
//	LoginRequest          identity (email, <=255) and password (8..128)
//	MediaCreateRequest    title, type and optional fields for a new media record
//	MediaUpdateRequest    same rules, every field optional (pointer, omitnil)
//	CategoryCreateRequest name, slug and optional display fields
//	CategoryUpdateRequest same rules, every field optional
//
// Uploaded files are checked separately with ValidateUpload (size and MIME
// type), and their names are cleaned with SanitizeFilename before they are
// forwarded to the backend.
//
// # API Error Integration
//
// ValidateStruct returns *RequestValidationError, whose ToAPIError produces
// the VALIDATION_FAILED code and a message listing every failing field:
//
//	{
//	    "code": "VALIDATION_FAILED",
//	    "message": "title is required; type must be one of: stream torrent iframe",
//	    "details": {"fields": [{"field": "title", ...}, {"field": "type", ...}]}
//	}
//
// # Thread Safety
//
// The validator caches struct reflection data and is safe for concurrent use.
package validation
