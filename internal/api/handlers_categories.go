// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/backend"
	"github.com/tomtom215/marquee/internal/logging"
)

// ListCategories lists categories, by default in sort_order.
//
// @Summary List categories
// @Tags Categories
// @Produce json
// @Param page query int false "Page number"
// @Param perPage query int false "Page size (max 500)"
// @Param sort query string false "Sort expression" default(sort_order)
// @Param filter query string false "Backend filter expression"
// @Param active query bool false "Only active categories (ignored when filter is set)"
// @Success 200 {object} APIResponse{data=CategoryList}
// @Router /api/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()
	page, perPage := pagingParams(r, 0)

	list, err := h.backend.ListCategories(r.Context(), auth.DelegatedCredential(r.Context()), backend.CategoryQuery{
		Page:       page,
		PerPage:    perPage,
		Sort:       q.Get("sort"),
		Filter:     q.Get("filter"),
		ActiveOnly: q.Get("active") == "true",
	})
	if err != nil {
		respondBackendError(rw, err, "")
		return
	}

	categories := list.Items
	if categories == nil {
		categories = []backend.Category{}
	}
	rw.Success(CategoryList{Categories: categories, Pagination: pagination(list)})
}

// GetCategory returns one category.
//
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} APIResponse{data=backend.Category}
// @Failure 404 {object} APIResponse "Category not found"
// @Router /api/categories/{id} [get]
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	category, err := h.backend.GetCategory(r.Context(), auth.DelegatedCredential(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondBackendError(rw, err, msgCategoryNotFound)
		return
	}
	rw.Success(category)
}

// CreateCategory creates a category from a multipart form.
//
// @Summary Create category
// @Tags Categories
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param slug formData string true "URL slug"
// @Param description formData string false "Description"
// @Param color formData string false "#RRGGBB"
// @Param sort_order formData int false "0 to 9999"
// @Param active formData bool false "Defaults to true"
// @Param icon formData file false "Icon image"
// @Success 201 {object} APIResponse{data=backend.Category}
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 401 {object} APIResponse "Authentication required"
// @Failure 429 {object} APIResponse "Too many requests"
// @Router /api/categories [post]
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	h.writeCategory(w, r, "")
}

// UpdateCategory applies a partial category update.
//
// @Summary Update category
// @Tags Categories
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} APIResponse{data=backend.Category}
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 404 {object} APIResponse "Category not found"
// @Router /api/categories/{id} [patch]
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	h.writeCategory(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) writeCategory(w http.ResponseWriter, r *http.Request, id string) {
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
	cf, err := categoryForm(form, id != "", files)
	if err != nil {
		respondFormError(rw, err)
		return
	}

	credential := auth.DelegatedCredential(ctx)
	if id == "" {
		category, err := h.backend.CreateCategory(ctx, credential, cf)
		if err != nil {
			respondBackendError(rw, err, "")
			return
		}
		logging.Ctx(ctx).Info().Str("category_id", category.ID).Msg("category created")
		rw.Created(category)
		return
	}

	category, err := h.backend.UpdateCategory(ctx, credential, id, cf)
	if err != nil {
		respondBackendError(rw, err, msgCategoryNotFound)
		return
	}
	rw.Success(category)
}

// DeleteCategory deletes a category.
//
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} DeleteResponse
// @Failure 401 {object} APIResponse "Authentication required"
// @Failure 404 {object} APIResponse "Category not found"
// @Router /api/categories/{id} [delete]
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")
	if err := h.backend.DeleteCategory(r.Context(), auth.DelegatedCredential(r.Context()), id); err != nil {
		respondBackendError(rw, err, msgCategoryNotFound)
		return
	}
	logging.Ctx(r.Context()).Info().Str("category_id", sanitizeLogValue(id)).Msg("category deleted")
	writeJSON(w, http.StatusOK, DeleteResponse{Success: true, Message: "Category deleted successfully"})
}
