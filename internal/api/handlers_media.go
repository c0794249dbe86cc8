// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/backend"
	"github.com/tomtom215/marquee/internal/logging"
)

// searchPerPage is the default page size of /api/media/search.
const searchPerPage = 50

// DeleteResponse is the body of a successful delete.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListMedia lists media records as videos.
//
// @Summary List media
// @Description Anonymous callers see public records; a session widens the view to what the operator may read.
// @Tags Media
// @Produce json
// @Param page query int false "Page number"
// @Param perPage query int false "Page size (max 500)"
// @Param sort query string false "Sort expression" default(-created)
// @Param filter query string false "Backend filter expression"
// @Param search query string false "Matches title or description"
// @Success 200 {object} APIResponse{data=VideoList}
// @Failure 502 {object} APIResponse "Backend unavailable"
// @Router /api/media [get]
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()
	page, perPage := pagingParams(r, 0)

	list, err := h.backend.ListMedia(r.Context(), auth.DelegatedCredential(r.Context()), backend.MediaQuery{
		Page:    page,
		PerPage: perPage,
		Sort:    q.Get("sort"),
		Filter:  q.Get("filter"),
		Search:  q.Get("search"),
	})
	if err != nil {
		respondBackendError(rw, err, "")
		return
	}
	rw.Success(h.toVideoList(list, ""))
}

// SearchMedia searches titles and descriptions.
//
// @Summary Search media
// @Tags Media
// @Produce json
// @Param q query string true "Search term"
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Page size" default(50)
// @Success 200 {object} APIResponse{data=VideoList}
// @Failure 400 {object} APIResponse "Search query is required"
// @Router /api/media/search [get]
func (h *Handler) SearchMedia(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		rw.BadRequest(msgSearchQueryRequired)
		return
	}
	page, perPage := pagingParams(r, searchPerPage)

	list, err := h.backend.ListMedia(r.Context(), auth.DelegatedCredential(r.Context()), backend.MediaQuery{
		Page:    max(page, 1),
		PerPage: perPage,
		Search:  term,
	})
	if err != nil {
		respondBackendError(rw, err, "")
		return
	}
	rw.Success(h.toVideoList(list, term))
}

// GetMedia returns one media record as a video.
//
// @Summary Get media
// @Tags Media
// @Produce json
// @Param id path string true "Media record id"
// @Success 200 {object} APIResponse{data=Video}
// @Failure 404 {object} APIResponse "Media not found"
// @Router /api/media/{id} [get]
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	media, err := h.backend.GetMedia(r.Context(), auth.DelegatedCredential(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondBackendError(rw, err, msgMediaNotFound)
		return
	}
	rw.Success(h.toVideo(media))
}

// CreateMedia creates a media record from a multipart form.
//
// @Summary Create media
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param type formData string true "stream, torrent or iframe"
// @Param imdb formData string false "IMDb id"
// @Param media_url formData string false "Stream URL"
// @Param description formData string false "Description"
// @Param iframe formData string false "Embed markup"
// @Param categories formData []string false "Category ids" collectionFormat(multi)
// @Param torrent formData file false "Torrent file"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 201 {object} APIResponse{data=backend.Media}
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 401 {object} APIResponse "Authentication required"
// @Failure 429 {object} APIResponse "Too many requests"
// @Router /api/media [post]
func (h *Handler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	h.writeMedia(w, r, "")
}

// UpdateMedia applies a partial update. Only sent fields change; an empty
// categories field clears the relation.
//
// @Summary Update media
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Media record id"
// @Success 200 {object} APIResponse{data=backend.Media}
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 401 {object} APIResponse "Authentication required"
// @Failure 404 {object} APIResponse "Media not found"
// @Router /api/media/{id} [patch]
func (h *Handler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	h.writeMedia(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) writeMedia(w http.ResponseWriter, r *http.Request, id string) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	form, err := parseMultipart(w, r)
	if err != nil {
		respondFormError(rw, err)
		return
	}
	defer removeForm(r, form)

	files := &uploads{}
	defer files.Close()
	mf, err := mediaForm(form, id != "", files)
	if err != nil {
		respondFormError(rw, err)
		return
	}

	credential := auth.DelegatedCredential(ctx)
	if id == "" {
		media, err := h.backend.CreateMedia(ctx, credential, mf)
		if err != nil {
			respondBackendError(rw, err, "")
			return
		}
		logging.Ctx(ctx).Info().Str("media_id", media.ID).Msg("media created")
		rw.Created(media)
		return
	}

	media, err := h.backend.UpdateMedia(ctx, credential, id, mf)
	if err != nil {
		respondBackendError(rw, err, msgMediaNotFound)
		return
	}
	logging.Ctx(ctx).Info().Str("media_id", media.ID).Msg("media updated")
	rw.Success(media)
}

// DeleteMedia deletes a media record.
//
// @Summary Delete media
// @Tags Media
// @Produce json
// @Param id path string true "Media record id"
// @Success 200 {object} DeleteResponse
// @Failure 401 {object} APIResponse "Authentication required"
// @Failure 404 {object} APIResponse "Media not found"
// @Router /api/media/{id} [delete]
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if err := h.backend.DeleteMedia(r.Context(), auth.DelegatedCredential(r.Context()), id); err != nil {
		respondBackendError(rw, err, msgMediaNotFound)
		return
	}
	logging.Ctx(r.Context()).Info().Str("media_id", sanitizeLogValue(id)).Msg("media deleted")
	writeJSON(w, http.StatusOK, DeleteResponse{Success: true, Message: "Media deleted successfully"})
}
