// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides page arithmetic shared by list operations and
// their HTTP endpoints.
//
// Pages are 1-indexed. A requested page below 1 is treated as page 1, and a
// page beyond the last one yields an empty window.
package pagination

import (
	"net/http"
	"strconv"
)

// DefaultPage is the starting page (1-indexed).
const DefaultPage = 1

// Params holds a normalized page number and a fixed page size.
type Params struct {
	Page  int
	Limit int
}

// New builds Params, clamping page to at least [DefaultPage].
func New(page, limit int) Params {
	if page < DefaultPage {
		page = DefaultPage
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the index of the first item on the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Window returns the half-open [start, end) range of the page inside a
// collection of total items. Both bounds are clamped to total.
func (p Params) Window(total int) (start, end int) {
	start = min(p.Offset(), total)
	end = min(start+p.Limit, total)
	return start, end
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta constructs pagination metadata for a response.
//
// TotalPages is ceil(total / limit).
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// PageFromRequest parses the "page" query parameter. Missing or malformed
// values yield [DefaultPage].
func PageFromRequest(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return DefaultPage
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < DefaultPage {
		return DefaultPage
	}

	return n
}
