// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookhub/pkg/pagination"
)

func TestParams_Window(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		total     int
		wantStart int
		wantEnd   int
	}{
		{"first_full", 1, 15, 0, 10},
		{"second_partial", 2, 15, 10, 15},
		{"beyond_last", 3, 15, 15, 15},
		{"zero_treated_as_first", 0, 15, 0, 10},
		{"negative_treated_as_first", -4, 3, 0, 3},
		{"empty", 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := pagination.New(tt.page, 10).Window(tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestNewMeta_TotalPages(t *testing.T) {
	assert.Equal(t, 2, pagination.NewMeta(1, 10, 15).TotalPages)
	assert.Equal(t, 1, pagination.NewMeta(1, 10, 10).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 10, 0).TotalPages)
}

func TestPageFromRequest(t *testing.T) {
	for query, want := range map[string]int{"": 1, "?page=3": 3, "?page=0": 1, "?page=abc": 1} {
		r := httptest.NewRequest("GET", "/discussions"+query, nil)
		assert.Equal(t, want, pagination.PageFromRequest(r), query)
	}
}
