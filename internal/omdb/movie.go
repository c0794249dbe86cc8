// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package omdb

import (
	"fmt"
	"regexp"
	"strings"
)

// Rating is one entry of Movie.Ratings.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Movie is an OMDB title record. Field names follow the OMDB wire format,
// which is passed through to clients unchanged.
type Movie struct {
	Title        string   `json:"Title"`
	Year         string   `json:"Year"`
	Rated        string   `json:"Rated"`
	Released     string   `json:"Released"`
	Runtime      string   `json:"Runtime"`
	Genre        string   `json:"Genre"`
	Director     string   `json:"Director"`
	Writer       string   `json:"Writer"`
	Actors       string   `json:"Actors"`
	Plot         string   `json:"Plot"`
	Language     string   `json:"Language"`
	Country      string   `json:"Country"`
	Awards       string   `json:"Awards"`
	Poster       string   `json:"Poster"`
	Ratings      []Rating `json:"Ratings"`
	Metascore    string   `json:"Metascore"`
	IMDBRating   string   `json:"imdbRating"`
	IMDBVotes    string   `json:"imdbVotes"`
	IMDBID       string   `json:"imdbID"`
	Type         string   `json:"Type"`
	TotalSeasons string   `json:"totalSeasons,omitempty"`
	Response     string   `json:"Response"`
	Error        string   `json:"Error,omitempty"`
}

var imdbIDPattern = regexp.MustCompile(`^tt\d{7,8}$`)

// NormalizeIMDBID accepts "tt1234567" or "1234567" and returns the "tt" form.
func NormalizeIMDBID(raw string) (string, error) {
	id := "tt" + strings.TrimPrefix(strings.TrimSpace(raw), "tt")
	if !imdbIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
