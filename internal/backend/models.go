// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package backend

import "fmt"

// Media types accepted by the media collection.
const (
	MediaTypeStream  = "stream"
	MediaTypeTorrent = "torrent"
	MediaTypeIframe  = "iframe"
)

// AuthRecord is the operator account returned by auth-with-password.
type AuthRecord struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	EmailVisibility bool   `json:"emailVisibility"`
	Verified        bool   `json:"verified"`
	Created         string `json:"created"`
	Updated         string `json:"updated"`
	CollectionID    string `json:"collectionId"`
	CollectionName  string `json:"collectionName"`
}

// AuthResult is a successful password authentication.
type AuthResult struct {
	// Token is the backend credential delegated to the session.
	Token  string     `json:"token"`
	Record AuthRecord `json:"record"`
}

func (a *AuthResult) validate() error {
	switch {
	case a.Token == "":
		return fmt.Errorf("%w: auth token missing", ErrMalformedResponse)
	case a.Record.ID == "":
		return fmt.Errorf("%w: auth record id missing", ErrMalformedResponse)
	case a.Record.Email == "":
		return fmt.Errorf("%w: auth record email missing", ErrMalformedResponse)
	}
	return nil
}

// Media is a record of the media collection.
type Media struct {
	ID             string      `json:"id"`
	CollectionID   string      `json:"collectionId"`
	CollectionName string      `json:"collectionName"`
	Title          string      `json:"title"`
	Type           string      `json:"type"`
	IMDB           string      `json:"imdb"`
	MediaURL       string      `json:"media_url"`
	Description    string      `json:"description"`
	Iframe         string      `json:"iframe"`
	Torrent        string      `json:"torrent"`
	Thumbnail      string      `json:"thumbnail"`
	MagnetLink     string      `json:"magnet_link"`
	Categories     []string    `json:"categories"`
	Expand         MediaExpand `json:"expand"`
	Created        string      `json:"created"`
	Updated        string      `json:"updated"`
}

// MediaExpand holds relations requested with expand=categories.
type MediaExpand struct {
	Categories []Category `json:"categories,omitempty"`
}

func (m *Media) validate() error {
	if m.ID == "" || m.CollectionID == "" {
		return fmt.Errorf("%w: media record missing id or collectionId", ErrMalformedResponse)
	}
	return nil
}

// Category is a record of the categories collection.
type Category struct {
	ID             string `json:"id"`
	CollectionID   string `json:"collectionId"`
	CollectionName string `json:"collectionName"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Slug           string `json:"slug"`
	Color          string `json:"color"`
	Icon           string `json:"icon"`
	SortOrder      int    `json:"sort_order"`
	Active         bool   `json:"active"`
	Created        string `json:"created"`
	Updated        string `json:"updated"`
}

func (c *Category) validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: category record missing id", ErrMalformedResponse)
	}
	return nil
}

// Page is a PocketBase list response.
type Page[T any] struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
	Items      []T `json:"items"`
}

type validatable interface {
	validate() error
}

func (p *Page[T]) validate() error {
	if p.Items == nil {
		return fmt.Errorf("%w: list response missing items", ErrMalformedResponse)
	}
	for i := range p.Items {
		if v, ok := any(&p.Items[i]).(validatable); ok {
			if err := v.validate(); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}
