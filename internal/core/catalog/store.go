// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Book Data Access

// Repository defines the data access contract for the catalogue.
//
// Implementations return deep copies; mutating a returned [Book] never
// changes stored state.
type Repository interface {

	/*
		List returns every book in catalogue order (insertion order).

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Book: Hydrated books with listings and chapters
		  - error: Storage failures
	*/
	List(context context.Context) ([]*Book, error)

	/*
		FindByID returns a single book.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Book: Hydrated book
		  - error: apperr.NotFound when absent
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		Create stores a book together with its listings and chapters.

		Parameters:
		  - context: context.Context
		  - book: *Book

		Returns:
		  - error: apperr.Conflict for a duplicate id, or storage failures
	*/
	Create(context context.Context, book *Book) error

	/*
		AddListing appends a seller listing to a book.

		Parameters:
		  - context: context.Context
		  - bookID: string
		  - listing: Listing

		Returns:
		  - error: apperr.NotFound when the book is absent
	*/
	AddListing(context context.Context, bookID string, listing Listing) error
}
