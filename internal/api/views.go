// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"github.com/tomtom215/marquee/internal/backend"
)

// Video is the public view of a media record.
type Video struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	URL         string             `json:"url"`
	Thumbnail   string             `json:"thumbnail,omitempty"`
	UploadedAt  string             `json:"uploadedAt"`
	Categories  []backend.Category `json:"categories"`
	SourceType  string             `json:"sourceType"`
	TorrentFile string             `json:"torrentFile,omitempty"`
	MagnetLink  string             `json:"magnetLink,omitempty"`
}

// Pagination mirrors the backend page counters.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// VideoList is the body of the media list and search endpoints.
type VideoList struct {
	Videos     []Video    `json:"videos"`
	SearchTerm string     `json:"searchTerm,omitempty"`
	Pagination Pagination `json:"pagination"`
}

// CategoryList is the body of the category list endpoint.
type CategoryList struct {
	Categories []backend.Category `json:"categories"`
	Pagination Pagination         `json:"pagination"`
}

func pagination[T any](p *backend.Page[T]) Pagination {
	return Pagination{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
		TotalItems: p.TotalItems,
	}
}

// toVideo builds the view. File fields become absolute backend URLs.
func (h *Handler) toVideo(m *backend.Media) Video {
	title := m.Title
	if title == "" {
		title = "Untitled"
	}
	url := m.MediaURL
	if url == "" {
		url = m.Iframe
	}
	categories := m.Expand.Categories
	if categories == nil {
		categories = []backend.Category{}
	}
	return Video{
		ID:          m.ID,
		Title:       title,
		Description: m.Description,
		URL:         url,
		Thumbnail:   h.backend.FileURL(m.CollectionID, m.ID, m.Thumbnail),
		UploadedAt:  m.Created,
		Categories:  categories,
		SourceType:  m.Type,
		TorrentFile: h.backend.FileURL(m.CollectionID, m.ID, m.Torrent),
		MagnetLink:  m.MagnetLink,
	}
}

func (h *Handler) toVideoList(p *backend.Page[backend.Media], searchTerm string) VideoList {
	videos := make([]Video, 0, len(p.Items))
	for i := range p.Items {
		videos = append(videos, h.toVideo(&p.Items[i]))
	}
	return VideoList{Videos: videos, SearchTerm: searchTerm, Pagination: pagination(p)}
}
