// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textmatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookhub/pkg/textmatch"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{"empty_needle", "Clean Code", "", true},
		{"lower_needle", "Clean Architecture", "clean", true},
		{"upper_needle", "Robert C. Martin", "MARTIN", true},
		{"no_match", "Refactoring", "clean", false},
		{"unicode_fold", "Straße", "STRASSE", true},
		{"hangul", "모던 자바스크립트", "자바", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textmatch.Contains(tt.haystack, tt.needle))
		})
	}
}

func TestMatcher_Any(t *testing.T) {
	m := textmatch.New("fowler")
	assert.True(t, m.Any("Refactoring", "Martin Fowler"))
	assert.False(t, m.Any("Clean Code", "Robert C. Martin"))
	assert.True(t, textmatch.New("").Empty())
}
