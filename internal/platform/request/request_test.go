// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	requestutil "github.com/taibuivan/bookhub/internal/platform/request"
	"github.com/taibuivan/bookhub/internal/platform/validate"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc.def", "abc.def", true},
		{"lower_scheme", "bearer abc", "abc", true},
		{"missing", "", "", false},
		{"basic_scheme", "Basic abc", "", false},
		{"no_token", "Bearer ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			token, ok := requestutil.BearerToken(request)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))

	var target struct{ Title string }
	assert.Equal(t, validate.ErrInvalidJSON, requestutil.DecodeJSON(request, &target))
}

func TestOptionalQuery(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/discussions?bookId=1&chapterId=+", nil)

	bookID := requestutil.OptionalQuery(request, "bookId")
	if assert.NotNil(t, bookID) {
		assert.Equal(t, "1", *bookID)
	}
	assert.Nil(t, requestutil.OptionalQuery(request, "chapterId"))
	assert.Nil(t, requestutil.OptionalQuery(request, "q"))
}
