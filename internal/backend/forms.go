// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package backend

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
)

// FileUpload is a file part forwarded to the backend.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// MediaForm is a create or partial update of a media record. Nil fields are
// not sent. For Categories, nil means "leave unchanged" and a non-nil empty
// slice clears the relation.
type MediaForm struct {
	Title       *string
	Type        *string
	IMDB        *string
	MediaURL    *string
	Description *string
	Iframe      *string
	Categories  []string
	Torrent     *FileUpload
	Thumbnail   *FileUpload
}

// CategoryForm is a create or partial update of a category record.
type CategoryForm struct {
	Name        *string
	Description *string
	Slug        *string
	Color       *string
	SortOrder   *int
	Active      *bool
	Icon        *FileUpload
}

// multipartBody streams a multipart form through a pipe so file parts are
// never held in memory. The returned reader must be closed by the caller;
// closing it early stops the writer goroutine.
type multipartBody struct {
	w   *multipart.Writer
	err error
}

func streamMultipart(fill func(mb *multipartBody)) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mb := &multipartBody{w: multipart.NewWriter(pw)}
	contentType := mb.w.FormDataContentType()
	go func() {
		fill(mb)
		if mb.err == nil {
			mb.err = mb.w.Close()
		}
		if mb.err != nil {
			_ = pw.CloseWithError(fmt.Errorf("build multipart body: %w", mb.err))
			return
		}
		_ = pw.Close()
	}()
	return pr, contentType
}

func (mb *multipartBody) field(name string, value *string) {
	if mb.err != nil || value == nil {
		return
	}
	mb.err = mb.w.WriteField(name, *value)
}

func (mb *multipartBody) file(name string, f *FileUpload) {
	if mb.err != nil || f == nil {
		return
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, f.Filename))
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := mb.w.CreatePart(h)
	if err != nil {
		mb.err = err
		return
	}
	_, mb.err = io.Copy(part, f.Content)
}

func (f *MediaForm) encode() (io.ReadCloser, string) {
	return streamMultipart(func(mb *multipartBody) {
		mb.field("title", f.Title)
		mb.field("type", f.Type)
		mb.field("imdb", f.IMDB)
		mb.field("media_url", f.MediaURL)
		mb.field("description", f.Description)
		mb.field("iframe", f.Iframe)
		if f.Categories != nil {
			if len(f.Categories) == 0 {
				empty := ""
				mb.field("categories", &empty)
			}
			for i := range f.Categories {
				mb.field("categories", &f.Categories[i])
			}
		}
		mb.file("torrent", f.Torrent)
		mb.file("thumbnail", f.Thumbnail)
	})
}

func (f *CategoryForm) encode() (io.ReadCloser, string) {
	return streamMultipart(func(mb *multipartBody) {
		mb.field("name", f.Name)
		mb.field("description", f.Description)
		mb.field("slug", f.Slug)
		mb.field("color", f.Color)
		if f.SortOrder != nil {
			s := strconv.Itoa(*f.SortOrder)
			mb.field("sort_order", &s)
		}
		if f.Active != nil {
			s := strconv.FormatBool(*f.Active)
			mb.field("active", &s)
		}
		mb.file("icon", f.Icon)
	})
}
