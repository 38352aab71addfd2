// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookhub/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookhub/internal/platform/request"
	"github.com/taibuivan/bookhub/internal/platform/respond"
)

// Handler implements the /me HTTP surface.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a router to be mounted at /me. A session is required.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getOverview)
	router.Get("/discussions", handler.getDiscussions)

	return router
}

/*
GET /api/v1/me.

Response:
  - 200: Overview
  - 401: LOGIN_REQUIRED
*/
func (handler *Handler) getOverview(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.accountService.Overview(request.Context(), requestutil.Actor(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, overview)
}

// GET /api/v1/me/discussions.
func (handler *Handler) getDiscussions(writer http.ResponseWriter, request *http.Request) {
	activity, err := handler.accountService.Activity(request.Context(), requestutil.Actor(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, activity)
}
