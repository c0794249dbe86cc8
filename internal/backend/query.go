// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package backend

import (
	"net/url"
	"strconv"
	"strings"
)

// Default sort orders.
const (
	DefaultMediaSort    = "-created"
	DefaultCategorySort = "sort_order"
)

// MediaQuery lists media records. Zero values are left to backend defaults.
type MediaQuery struct {
	Page    int
	PerPage int
	Sort    string
	// Filter is a raw PocketBase filter expression.
	Filter string
	// Search matches title or description; it is ANDed with Filter.
	Search string
}

func (q MediaQuery) values() url.Values {
	v := url.Values{}
	v.Set("expand", "categories")
	v.Set("sort", orDefault(q.Sort, DefaultMediaSort))
	setPaging(v, q.Page, q.PerPage)

	filter := q.Filter
	if search := strings.TrimSpace(q.Search); search != "" {
		sf := SearchFilter(search)
		if filter != "" {
			filter = "(" + filter + ") && (" + sf + ")"
		} else {
			filter = sf
		}
	}
	if filter != "" {
		v.Set("filter", filter)
	}
	return v
}

// CategoryQuery lists category records.
type CategoryQuery struct {
	Page    int
	PerPage int
	Sort    string
	Filter  string
	// ActiveOnly adds "active=true" when Filter is empty.
	ActiveOnly bool
}

func (q CategoryQuery) values() url.Values {
	v := url.Values{}
	v.Set("sort", orDefault(q.Sort, DefaultCategorySort))
	setPaging(v, q.Page, q.PerPage)

	switch {
	case q.Filter != "":
		v.Set("filter", q.Filter)
	case q.ActiveOnly:
		v.Set("filter", "active=true")
	}
	return v
}

// SearchFilter builds a title/description contains filter. Quotes and
// backslashes in term are escaped so the term cannot close the string literal.
func SearchFilter(term string) string {
	q := quoteFilterString(term)
	return "title ~ " + q + " || description ~ " + q
}

var filterEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteFilterString(s string) string {
	return `"` + filterEscaper.Replace(s) + `"`
}

func setPaging(v url.Values, page, perPage int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		v.Set("perPage", strconv.Itoa(perPage))
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
