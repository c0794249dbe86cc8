// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/tomtom215/marquee/internal/backend"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/validation"
)

const (
	// maxMultipartMemory is held in memory; larger parts spill to temp files.
	maxMultipartMemory = 32 << 20

	// maxMultipartBody allows two full-size files plus the text fields.
	maxMultipartBody = 2*validation.MaxUploadSize + 1<<20
)

// parseMultipart parses a bounded multipart/form-data body. The caller must
// call RemoveAll on the returned form.
func parseMultipart(w http.ResponseWriter, r *http.Request) (*multipart.Form, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return nil, ErrMultipartRequired
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, err
	}
	return r.MultipartForm, nil
}

func removeForm(r *http.Request, form *multipart.Form) {
	if err := form.RemoveAll(); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("removing multipart temp files")
	}
}

// formField returns the first value of name, or nil when the field is absent.
// A present but empty field yields a pointer to "".
func formField(form *multipart.Form, name string) *string {
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func formString(form *multipart.Form, name string) string {
	if v := formField(form, name); v != nil {
		return *v
	}
	return ""
}

// nonEmpty drops "" so optional create fields are not sent at all.
func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// formList returns the non-empty values of a repeated field. The result is
// nil when the field is absent and an empty slice when it was sent with
// only empty values, which clears the relation on update.
func formList(form *multipart.Form, name string) []string {
	values, ok := form.Value[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// uploads tracks opened file parts until the backend call is done.
type uploads struct {
	files []multipart.File
}

func (u *uploads) Close() {
	for _, f := range u.files {
		if err := f.Close(); err != nil {
			logging.Debug().Err(err).Msg("closing upload part")
		}
	}
}

// open validates and opens the file sent as field. It returns nil, nil when
// no file was sent.
func (u *uploads) open(form *multipart.Form, field string) (*backend.FileUpload, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]
	contentType := fh.Header.Get("Content-Type")
	if verr := validation.ValidateUpload(field, contentType, fh.Size); verr != nil {
		return nil, verr
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	u.files = append(u.files, f)
	return &backend.FileUpload{
		Filename:    validation.SanitizeFilename(fh.Filename),
		ContentType: contentType,
		Content:     io.Reader(f),
	}, nil
}

// mediaForm builds a create (partial=false) or update form. Validation
// failures are returned as *validation.RequestValidationError.
func mediaForm(form *multipart.Form, partial bool, u *uploads) (*backend.MediaForm, error) {
	var mf *backend.MediaForm
	if partial {
		req := validation.MediaUpdateRequest{
			Title:       formField(form, "title"),
			Type:        formField(form, "type"),
			Description: formField(form, "description"),
			MediaURL:    formField(form, "media_url"),
			Iframe:      formField(form, "iframe"),
			IMDB:        formField(form, "imdb"),
			Categories:  formList(form, "categories"),
		}
		if verr := validation.ValidateStruct(&req); verr != nil {
			return nil, verr
		}
		mf = &backend.MediaForm{
			Title:       req.Title,
			Type:        req.Type,
			IMDB:        req.IMDB,
			MediaURL:    req.MediaURL,
			Description: req.Description,
			Iframe:      req.Iframe,
			Categories:  req.Categories,
		}
	} else {
		req := validation.MediaCreateRequest{
			Title:       formString(form, "title"),
			Type:        formString(form, "type"),
			Description: formString(form, "description"),
			MediaURL:    formString(form, "media_url"),
			Iframe:      formString(form, "iframe"),
			IMDB:        formString(form, "imdb"),
			Categories:  formList(form, "categories"),
		}
		if verr := validation.ValidateStruct(&req); verr != nil {
			return nil, verr
		}
		mf = &backend.MediaForm{
			Title:       &req.Title,
			Type:        &req.Type,
			IMDB:        nonEmpty(req.IMDB),
			MediaURL:    nonEmpty(req.MediaURL),
			Description: nonEmpty(req.Description),
			Iframe:      nonEmpty(req.Iframe),
		}
		if len(req.Categories) > 0 {
			mf.Categories = req.Categories
		}
	}

	var err error
	if mf.Torrent, err = u.open(form, "torrent"); err != nil {
		return nil, err
	}
	if mf.Thumbnail, err = u.open(form, "thumbnail"); err != nil {
		return nil, err
	}
	return mf, nil
}

// categoryForm builds a create or update category form. On create an
// absent "active" defaults to true.
func categoryForm(form *multipart.Form, partial bool, u *uploads) (*backend.CategoryForm, error) {
	sortOrder, err := formInt(form, "sort_order")
	if err != nil {
		return nil, err
	}
	active, err := formBool(form, "active")
	if err != nil {
		return nil, err
	}

	var cf *backend.CategoryForm
	if partial {
		req := validation.CategoryUpdateRequest{
			Name:        formField(form, "name"),
			Description: formField(form, "description"),
			Slug:        formField(form, "slug"),
			Color:       formField(form, "color"),
			SortOrder:   sortOrder,
			Active:      active,
		}
		if verr := validation.ValidateStruct(&req); verr != nil {
			return nil, verr
		}
		cf = &backend.CategoryForm{
			Name:        req.Name,
			Description: req.Description,
			Slug:        req.Slug,
			Color:       req.Color,
			SortOrder:   req.SortOrder,
			Active:      req.Active,
		}
	} else {
		if active == nil {
			t := true
			active = &t
		}
		req := validation.CategoryCreateRequest{
			Name:        formString(form, "name"),
			Description: formString(form, "description"),
			Slug:        formString(form, "slug"),
			Color:       formString(form, "color"),
			SortOrder:   sortOrder,
			Active:      active,
		}
		if verr := validation.ValidateStruct(&req); verr != nil {
			return nil, verr
		}
		cf = &backend.CategoryForm{
			Name:        &req.Name,
			Description: nonEmpty(req.Description),
			Slug:        &req.Slug,
			Color:       nonEmpty(req.Color),
			SortOrder:   req.SortOrder,
			Active:      req.Active,
		}
	}

	if cf.Icon, err = u.open(form, "icon"); err != nil {
		return nil, err
	}
	return cf, nil
}

func formInt(form *multipart.Form, name string) (*int, error) {
	raw := formField(form, name)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, validation.NewFieldError(name, "number", name+" must be a whole number")
	}
	return &n, nil
}

func formBool(form *multipart.Form, name string) (*bool, error) {
	raw := formField(form, name)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, validation.NewFieldError(name, "boolean", name+" must be true or false")
	}
	return &b, nil
}
