// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookhub/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookhub/internal/platform/request"
	"github.com/taibuivan/bookhub/internal/platform/respond"
	"github.com/taibuivan/bookhub/pkg/pagination"
)

// # Handler Implementation

// Handler implements the /discussions HTTP surface. Every board endpoint
// requires a session.
type Handler struct {
	service *Service
}

// NewHandler constructs a new board [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a router to be mounted at /discussions.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/{discussionID}", handler.Get)
	router.Post("/{discussionID}/like", handler.ToggleLike)
	router.Post("/{discussionID}/comments", handler.AddComment)

	return router
}

// # Board Retrieval

/*
GET /api/v1/discussions?bookId=&chapterId=&q=&page=.

Response:
  - 200: []Discussion with pagination meta
  - 401: LOGIN_REQUIRED
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		BookID:    requestutil.OptionalQuery(request, "bookId"),
		ChapterID: requestutil.OptionalQuery(request, "chapterId"),
		Search:    requestutil.Query(request, "q"),
	}

	page, err := handler.service.List(request.Context(), requestutil.Actor(request), filter, pagination.PageFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, page.Meta)
}

// GET /api/v1/discussions/{discussionID}.
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	discussion, err := handler.service.Get(request.Context(), requestutil.Actor(request), requestutil.Param(request, "discussionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, discussion)
}

// GET /api/v1/books/{bookID}/discussions. Previews the newest threads.
func (handler *Handler) TopForBook(writer http.ResponseWriter, request *http.Request) {
	discussions, err := handler.service.TopForBook(request.Context(),
		requestutil.Actor(request),
		requestutil.Param(request, "bookID"),
		DefaultTopForBook,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, discussions)
}

// # Mutations

// createRequest defines the inbound JSON schema of the new-thread form.
type createRequest struct {
	BookID    string  `json:"bookId"`
	ChapterID *string `json:"chapterId"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
}

/*
POST /api/v1/discussions.

Request:
  - body: createRequest

Response:
  - 201: Discussion
  - 400: VALIDATION_ERROR: The first failed rule only
  - 401: LOGIN_REQUIRED
*/
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var body createRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	discussion, err := handler.service.Create(request.Context(), requestutil.Actor(request), CreateInput(body))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, discussion)
}

// POST /api/v1/discussions/{discussionID}/like.
func (handler *Handler) ToggleLike(writer http.ResponseWriter, request *http.Request) {
	state, err := handler.service.ToggleLike(request.Context(), requestutil.Actor(request), requestutil.Param(request, "discussionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}

type commentRequest struct {
	Content string `json:"content"`
}

/*
POST /api/v1/discussions/{discussionID}/comments.

Response:
  - 201: Comment
  - 400: VALIDATION_ERROR: Blank content
  - 404: Discussion not found
*/
func (handler *Handler) AddComment(writer http.ResponseWriter, request *http.Request) {
	var body commentRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.AddComment(request.Context(),
		requestutil.Actor(request),
		requestutil.Param(request, "discussionID"),
		body.Content,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}
