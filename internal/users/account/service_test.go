// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookhub/internal/core/catalog"
	"github.com/taibuivan/bookhub/internal/core/discussion"
	"github.com/taibuivan/bookhub/internal/fixtures"
	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/sec"
	"github.com/taibuivan/bookhub/internal/users/account"
	"github.com/taibuivan/bookhub/internal/users/auth"
)

type profileStub map[string]*auth.Profile

func (stub profileStub) Profile(_ context.Context, userID string) (*auth.Profile, error) {
	profile, ok := stub[userID]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return profile, nil
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	books := catalog.NewMemoryRepository()
	board := discussion.NewMemoryRepository()

	require.NoError(t, fixtures.Seed(ctx, fixtures.Targets{
		Users:  auth.NewMemoryUserRepository(),
		Scheme: sec.PlainScheme{},
		Books:  books,
		Board:  board,
	}, logger))

	catalogService := catalog.NewService(books, logger)
	boardService := discussion.NewService(board, catalogService, logger)
	profiles := profileStub{
		"1": {ID: "1", Name: "Kim Cheolsu", PurchasedBooks: []string{"2", "gone"}},
	}
	service := account.NewService(profiles, catalogService, boardService, logger)

	viewer := &sec.Actor{ID: "1", Name: "Kim Cheolsu"}
	_, err := boardService.AddComment(ctx, viewer, "3", "Closures keep hoisted names alive")
	require.NoError(t, err)

	overview, err := service.Overview(ctx, viewer)
	require.NoError(t, err)

	require.Len(t, overview.PurchasedBooks, 1, "unknown purchased ids are skipped")
	assert.Equal(t, "2", overview.PurchasedBooks[0].ID)
	require.Len(t, overview.Authored, 1)
	assert.Equal(t, "1", overview.Authored[0].ID)
	require.Len(t, overview.Participated, 1)
	assert.Equal(t, "3", overview.Participated[0].ID)

	_, err = service.Overview(ctx, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeLoginRequired))

	_, err = service.Activity(ctx, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeLoginRequired))
}
