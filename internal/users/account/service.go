// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/bookhub/internal/core/catalog"
	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/sec"
)

// # Service Layer

// Service builds the "my page" views.
type Service struct {
	profiles ProfileSource
	books    BookSource
	board    BoardSource
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(profiles ProfileSource, books BookSource, board BoardSource, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		books:    books,
		board:    board,
		logger:   logger,
	}
}

/*
Overview returns the profile, purchased books and board activity of viewer.

Description: Purchased books and board activity load concurrently. Purchased
ids that no longer resolve to a book are skipped and logged.

Parameters:
  - context: context.Context
  - viewer: *sec.Actor (nil fails with LOGIN_REQUIRED)

Returns:
  - *Overview: The assembled page
  - error: LOGIN_REQUIRED or lookup failures
*/
func (service *Service) Overview(context context.Context, viewer *sec.Actor) (*Overview, error) {
	if err := sec.RequireActor(viewer); err != nil {
		return nil, err
	}

	profile, err := service.profiles.Profile(context, viewer.ID)
	if err != nil {
		return nil, err
	}

	var (
		books    []*catalog.Book
		activity *Activity
	)

	group, groupCtx := errgroup.WithContext(context)
	group.Go(func() error {
		var booksErr error
		books, booksErr = service.purchasedBooks(groupCtx, viewer.ID, profile.PurchasedBooks)
		return booksErr
	})
	group.Go(func() error {
		var activityErr error
		activity, activityErr = service.Activity(groupCtx, viewer)
		return activityErr
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &Overview{
		Profile:        profile,
		PurchasedBooks: books,
		Activity:       *activity,
	}, nil
}

func (service *Service) purchasedBooks(context context.Context, userID string, bookIDs []string) ([]*catalog.Book, error) {
	books := make([]*catalog.Book, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		book, err := service.books.GetBook(context, bookID)
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.logger.Warn("account_purchased_book_missing",
				slog.String("user_id", userID),
				slog.String("book_id", bookID),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("account_service_book_lookup_failed: %w", err)
		}
		books = append(books, book)
	}
	return books, nil
}

// Activity returns the discussions viewer started and the ones they commented on.
func (service *Service) Activity(context context.Context, viewer *sec.Actor) (*Activity, error) {
	if err := sec.RequireActor(viewer); err != nil {
		return nil, err
	}

	authored, err := service.board.ByAuthor(context, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("account_service_authored_failed: %w", err)
	}

	participated, err := service.board.Participated(context, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("account_service_participated_failed: %w", err)
	}

	return &Activity{Authored: authored, Participated: participated}, nil
}
