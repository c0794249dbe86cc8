// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"fmt"
	"mime"
	"regexp"
	"strings"
)

// MaxUploadSize is the largest file accepted for any upload field.
const MaxUploadSize = 100 << 20

const maxFilenameLength = 255

var allowedUploadTypes = map[string]bool{
	"image/jpeg":               true,
	"image/jpg":                true,
	"image/png":                true,
	"image/gif":                true,
	"image/webp":               true,
	"video/mp4":                true,
	"video/webm":               true,
	"video/ogg":                true,
	"application/x-bittorrent": true,
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	repeatedUnderscores = regexp.MustCompile(`_{2,}`)
)

// ValidateUpload checks one uploaded file's size and declared content type.
// Parameters on the content type (";charset=...") are ignored.
func ValidateUpload(field, contentType string, size int64) *RequestValidationError {
	if size > MaxUploadSize {
		return NewFieldError(field, "filesize",
			fmt.Sprintf("%s must be at most %d MB", field, MaxUploadSize>>20))
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !allowedUploadTypes[strings.ToLower(mediaType)] {
		return NewFieldError(field, "filetype",
			fmt.Sprintf("%s has an unsupported file type", field))
	}
	return nil
}

// SanitizeFilename replaces everything outside [a-zA-Z0-9.-] with "_",
// collapses runs of underscores and truncates to 255 bytes.
func SanitizeFilename(name string) string {
	s := unsafeFilenameChars.ReplaceAllString(name, "_")
	s = repeatedUnderscores.ReplaceAllString(s, "_")
	if len(s) > maxFilenameLength {
		s = s[:maxFilenameLength]
	}
	return s
}
