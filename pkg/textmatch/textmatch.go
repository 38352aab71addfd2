// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textmatch implements the case-insensitive substring matching used by
// catalogue and board search.
//
// Matching uses full Unicode case folding, so "CLEAN" matches "clean" and
// "STRASSE" matches "straße".
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher tests candidate strings against one folded search term.
//
// A Matcher is immutable once built and safe for concurrent use.
type Matcher struct {
	term string
}

// New folds term once so each candidate only needs folding on its own side.
func New(term string) Matcher {
	return Matcher{term: fold(term)}
}

// Empty reports whether the term matches everything.
func (m Matcher) Empty() bool {
	return m.term == ""
}

// Any reports whether any candidate contains the term. An empty term matches.
func (m Matcher) Any(candidates ...string) bool {
	if m.term == "" {
		return true
	}
	for _, candidate := range candidates {
		if strings.Contains(fold(candidate), m.term) {
			return true
		}
	}
	return false
}

// Contains reports whether haystack contains needle ignoring case.
func Contains(haystack, needle string) bool {
	return New(needle).Any(haystack)
}

// fold builds a fresh caser per call; a cases.Caser is stateful and must not
// be shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}
