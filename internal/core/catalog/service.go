// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/sec"
	"github.com/taibuivan/bookhub/internal/platform/validate"
	"github.com/taibuivan/bookhub/pkg/slice"
	"github.com/taibuivan/bookhub/pkg/uuidv7"
)

const (
	FieldBookID    = "bookId"
	FieldPrice     = "price"
	FieldCondition = "condition"
)

// # Service Layer

// Service orchestrates the catalogue use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// # Browsing

// ListBooks returns every book in catalogue order.
func (service *Service) ListBooks(context context.Context) ([]*Book, error) {
	return service.repository.List(context)
}

/*
Filter narrows the catalogue by a search term and an optional category.

Parameters:
  - context: context.Context
  - term: string (Matched case-insensitively against title and author; empty matches all)
  - category: string (Exact label; empty disables the category check)

Returns:
  - []*Book: Matching books in catalogue order
  - error: Storage failures
*/
func (service *Service) Filter(context context.Context, term, category string) ([]*Book, error) {
	books, err := service.repository.List(context)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_filter_failed: %w", err)
	}
	return Filter(books, term, category), nil
}

// GetBook returns one book, or NOT_FOUND.
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	return service.repository.FindByID(context, id)
}

// Categories returns the distinct category labels in first-seen order.
func (service *Service) Categories(context context.Context) ([]string, error) {
	books, err := service.repository.List(context)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_categories_failed: %w", err)
	}
	return Categories(books), nil
}

// # Chapters

// Chapters returns the chapters of a book in reading order.
func (service *Service) Chapters(context context.Context, bookID string) ([]Chapter, error) {
	book, err := service.repository.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}
	return book.Chapters, nil
}

// Chapter returns one chapter of a book, or NOT_FOUND when the book does not
// own it.
func (service *Service) Chapter(context context.Context, bookID, chapterID string) (*Chapter, error) {
	book, err := service.repository.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}
	chapter, ok := book.FindChapter(chapterID)
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	return chapter, nil
}

// BookExists reports whether a book id is in the catalogue.
func (service *Service) BookExists(context context.Context, bookID string) (bool, error) {
	_, err := service.repository.FindByID(context, bookID)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ChapterBelongs reports whether chapterID is a chapter of bookID.
// A missing book yields false.
func (service *Service) ChapterBelongs(context context.Context, bookID, chapterID string) (bool, error) {
	_, err := service.Chapter(context, bookID, chapterID)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return false, nil
	}
	return err == nil, err
}

// # Selling

// ListingInput is the sell form. Every field is required.
type ListingInput struct {
	BookID    string
	Price     int64
	Condition string
}

/*
CreateListing offers a copy of a catalogue book on behalf of the seller.

Parameters:
  - context: context.Context
  - seller: *sec.Actor (The logged-in user; nil fails with LOGIN_REQUIRED)
  - input: ListingInput

Returns:
  - *Listing: The appended listing
  - error: LOGIN_REQUIRED, VALIDATION_ERROR, NOT_FOUND or storage failures
*/
func (service *Service) CreateListing(context context.Context, seller *sec.Actor, input ListingInput) (*Listing, error) {
	if err := sec.RequireActor(seller); err != nil {
		return nil, err
	}

	conditions := slice.Map(Conditions, func(c Condition) string { return string(c) })

	validator := &validate.Validator{}
	validator.RequiredMsg(FieldBookID, input.BookID, "Please select a book")
	validator.Positive(FieldPrice, input.Price)
	validator.OneOf(FieldCondition, input.Condition, conditions...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	listing := Listing{
		ID:         uuidv7.New(),
		Price:      input.Price,
		Condition:  Condition(input.Condition),
		SellerID:   seller.ID,
		SellerName: seller.Name,
	}

	if err := service.repository.AddListing(context, input.BookID, listing); err != nil {
		return nil, err
	}

	service.logger.Info("listing_created",
		slog.String("listing_id", listing.ID),
		slog.String("book_id", input.BookID),
		slog.String("seller_id", seller.ID),
		slog.Int64("price", listing.Price),
	)

	return &listing, nil
}
