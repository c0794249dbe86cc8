// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Identity string `json:"identity" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// MediaCreateRequest holds the text fields of a new media record.
type MediaCreateRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255,nohtmlinjection"`
	Type        string   `json:"type" validate:"required,oneof=stream torrent iframe"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
	MediaURL    string   `json:"media_url" validate:"omitempty,max=2000,httpurl"`
	Iframe      string   `json:"iframe" validate:"omitempty,max=2000,noscripttag"`
	IMDB        string   `json:"imdb" validate:"omitempty,max=20,imdbid"`
	Categories  []string `json:"categories" validate:"omitempty,dive,required"`
}

// MediaUpdateRequest is a partial media update; nil fields are left unchanged.
// An empty string clears an optional field.
type MediaUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitnil,min=1,max=255,nohtmlinjection"`
	Type        *string  `json:"type" validate:"omitnil,oneof=stream torrent iframe"`
	Description *string  `json:"description" validate:"omitnil,max=1000"`
	MediaURL    *string  `json:"media_url" validate:"omitnil,max=2000,len=0|httpurl"`
	Iframe      *string  `json:"iframe" validate:"omitnil,max=2000,noscripttag"`
	IMDB        *string  `json:"imdb" validate:"omitnil,max=20,len=0|imdbid"`
	Categories  []string `json:"categories" validate:"omitempty,dive,required"`
}

// CategoryCreateRequest holds the text fields of a new category.
type CategoryCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100,nohtmlinjection"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Slug        string `json:"slug" validate:"required,min=1,max=100,slug"`
	Color       string `json:"color" validate:"omitempty,rgbhex"`
	SortOrder   *int   `json:"sort_order" validate:"omitnil,min=0,max=9999"`
	Active      *bool  `json:"active"`
}

// CategoryUpdateRequest is a partial category update.
type CategoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100,nohtmlinjection"`
	Description *string `json:"description" validate:"omitnil,max=500"`
	Slug        *string `json:"slug" validate:"omitnil,min=1,max=100,slug"`
	Color       *string `json:"color" validate:"omitnil,len=0|rgbhex"`
	SortOrder   *int    `json:"sort_order" validate:"omitnil,min=0,max=9999"`
	Active      *bool   `json:"active"`
}
