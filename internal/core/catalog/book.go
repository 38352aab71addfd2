// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog implements the book catalogue: books, their seller price
listings and their chapters.

# Architecture

  - Book / Listing / Chapter: Domain entities and pure queries over them.
  - Repository: Storage contract with in-memory and PostgreSQL implementations.
  - Service: Filtering, lookups and seller listing creation.
  - Handler: The /books HTTP surface.
*/
package catalog

import (
	"cmp"
	"slices"

	"github.com/taibuivan/bookhub/pkg/slice"
	"github.com/taibuivan/bookhub/pkg/textmatch"
)

// # Domain Entities

// Condition describes the physical state of a listed copy.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like-new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
)

// Conditions lists every accepted [Condition] from best to worst.
var Conditions = []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair}

// Valid reports whether c is one of [Conditions].
func (c Condition) Valid() bool {
	return slices.Contains(Conditions, c)
}

// Listing is one seller's offer for a copy of a book. Price is in won.
type Listing struct {
	ID         string    `json:"id"`
	Price      int64     `json:"price"`
	Condition  Condition `json:"condition"`
	SellerID   string    `json:"sellerId"`
	SellerName string    `json:"sellerName"`
}

// Chapter is a section of a book that discussions can be attached to.
type Chapter struct {
	ID     string `json:"id"`
	BookID string `json:"bookId"`
	Title  string `json:"title"`
}

// Book is a catalogue entry. Prices and Chapters keep insertion order.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	CoverImage  string    `json:"coverImage"`
	PublishYear int       `json:"publishYear"`
	Categories  []string  `json:"categories"`
	Prices      []Listing `json:"prices"`
	Likes       int       `json:"likes"`
	Chapters    []Chapter `json:"chapters"`
}

// Clone returns a deep copy so callers never share slices with storage.
func (book *Book) Clone() *Book {
	clone := *book
	clone.Categories = append([]string{}, book.Categories...)
	clone.Prices = append([]Listing{}, book.Prices...)
	clone.Chapters = append([]Chapter{}, book.Chapters...)
	return &clone
}

// FindChapter returns the chapter with the given id if the book owns it.
func (book *Book) FindChapter(chapterID string) (*Chapter, bool) {
	for i := range book.Chapters {
		if book.Chapters[i].ID == chapterID {
			chapter := book.Chapters[i]
			return &chapter, true
		}
	}
	return nil, false
}

// # Pure Queries

// MinPrice returns the cheapest listing price. The second result is false
// when the book has no listings.
func MinPrice(book *Book) (int64, bool) {
	if len(book.Prices) == 0 {
		return 0, false
	}
	lowest := book.Prices[0].Price
	for _, listing := range book.Prices[1:] {
		lowest = min(lowest, listing.Price)
	}
	return lowest, true
}

// SortedListings returns a copy of the listings ordered by ascending price.
// Equal prices keep their listing order.
func SortedListings(book *Book) []Listing {
	sorted := append([]Listing{}, book.Prices...)
	slices.SortStableFunc(sorted, func(a, b Listing) int {
		return cmp.Compare(a.Price, b.Price)
	})
	return sorted
}

// Filter keeps the books whose title or author contains term ignoring case,
// and, when category is non-empty, that carry exactly that category label.
// Input order is preserved.
func Filter(books []*Book, term, category string) []*Book {
	matcher := textmatch.New(term)
	return slice.Filter(books, func(book *Book) bool {
		if !matcher.Any(book.Title, book.Author) {
			return false
		}
		return category == "" || slices.Contains(book.Categories, category)
	})
}

// Categories returns the distinct category labels in first-seen order.
func Categories(books []*Book) []string {
	var labels []string
	for _, book := range books {
		labels = append(labels, book.Categories...)
	}
	return slice.Distinct(labels)
}
