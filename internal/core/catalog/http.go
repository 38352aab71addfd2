// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookhub/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookhub/internal/platform/request"
	"github.com/taibuivan/bookhub/internal/platform/respond"
	"github.com/taibuivan/bookhub/pkg/slice"
)

// # Handler Implementation

// Handler implements the /books HTTP surface.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalogue [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches catalogue endpoints to a router mounted at /books.
func (handler *Handler) RegisterRoutes(books chi.Router) {
	books.Get("/", handler.ListBooks)
	books.Get("/categories", handler.ListCategories)
	books.Get("/{bookID}", handler.GetBook)
	books.Get("/{bookID}/chapters", handler.ListChapters)

	books.Group(func(seller chi.Router) {
		seller.Use(middleware.RequireAuth)
		seller.Post("/{bookID}/listings", handler.CreateListing)
	})
}

// # Views

// bookView decorates a book with its cheapest price. MinPrice is null when
// the book has no listings.
type bookView struct {
	*Book
	MinPrice *int64 `json:"minPrice"`
}

func newBookView(book *Book) bookView {
	view := bookView{Book: book}
	if lowest, ok := MinPrice(book); ok {
		view.MinPrice = &lowest
	}
	return view
}

// # Book Retrieval

/*
GET /api/v1/books?q=&category=.

Response:
  - 200: []bookView: Matching books in catalogue order
*/
func (handler *Handler) ListBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.Filter(request.Context(),
		requestutil.Query(request, "q"),
		requestutil.Query(request, "category"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(books, newBookView))
}

// GET /api/v1/books/categories.
func (handler *Handler) ListCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

/*
GET /api/v1/books/{bookID}.

Description: Returns the book with its listings sorted by ascending price.

Response:
  - 200: bookView
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) GetBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetBook(request.Context(), requestutil.Param(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book.Prices = SortedListings(book)
	respond.OK(writer, newBookView(book))
}

// GET /api/v1/books/{bookID}/chapters.
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.Chapters(request.Context(), requestutil.Param(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapters)
}

// # Selling

// createListingRequest defines the inbound JSON schema of the sell form.
type createListingRequest struct {
	Price     int64  `json:"price"`
	Condition string `json:"condition"`
}

/*
POST /api/v1/books/{bookID}/listings.

Request:
  - body: createListingRequest

Response:
  - 201: Listing
  - 400: Validation: Missing price or unknown condition
  - 401: LOGIN_REQUIRED
  - 404: Book not found
*/
func (handler *Handler) CreateListing(writer http.ResponseWriter, request *http.Request) {
	var body createListingRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	listing, err := handler.service.CreateListing(request.Context(), requestutil.Actor(request), ListingInput{
		BookID:    requestutil.Param(request, "bookID"),
		Price:     body.Price,
		Condition: body.Condition,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, listing)
}
