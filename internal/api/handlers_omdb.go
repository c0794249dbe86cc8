// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// OMDBLookup returns OMDB metadata for an IMDb id.
//
// @Summary Look up a title on OMDB
// @Description The id may omit the "tt" prefix. Results are cached.
// @Tags OMDB
// @Produce json
// @Param imdbId path string true "IMDb id, e.g. tt0111161"
// @Success 200 {object} APIResponse{data=omdb.Movie}
// @Failure 400 {object} APIResponse "Invalid IMDB ID format"
// @Failure 401 {object} APIResponse "Authentication required"
// @Failure 404 {object} APIResponse "Movie not found"
// @Failure 500 {object} APIResponse "OMDB API key not configured"
// @Router /api/omdb/{imdbId} [get]
func (h *Handler) OMDBLookup(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.omdb == nil {
		rw.InternalError(msgOMDBNotConfigured)
		return
	}

	movie, err := h.omdb.Lookup(r.Context(), chi.URLParam(r, "imdbId"))
	if err != nil {
		respondOMDBError(rw, err)
		return
	}
	rw.Success(movie)
}
