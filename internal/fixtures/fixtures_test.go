// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fixtures_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookhub/internal/core/catalog"
	"github.com/taibuivan/bookhub/internal/core/discussion"
	"github.com/taibuivan/bookhub/internal/fixtures"
	"github.com/taibuivan/bookhub/internal/platform/sec"
	"github.com/taibuivan/bookhub/internal/users/auth"
)

func TestLoad(t *testing.T) {
	set, err := fixtures.Load()
	require.NoError(t, err)

	require.Len(t, set.Users, 2)
	assert.Equal(t, "test@test.com", set.Users[0].Email)
	assert.Equal(t, []string{"2"}, set.Users[0].PurchasedBooks)
	assert.Empty(t, set.Users[1].PurchasedBooks)

	require.Len(t, set.Books, 4)
	for _, book := range set.Books {
		for _, listing := range book.Prices {
			assert.True(t, listing.Condition.Valid(), "book %s listing %s", book.ID, listing.ID)
		}
		for _, chapter := range book.Chapters {
			assert.Equal(t, book.ID, chapter.BookID)
		}
	}

	require.Len(t, set.Discussions, 3)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), set.Discussions[0].CreatedAt)
	for _, thread := range set.Discussions {
		assert.GreaterOrEqual(t, len([]rune(thread.Content)), discussion.MinContentLength)
		assert.LessOrEqual(t, len([]rune(thread.Title)), discussion.MaxTitleLength)
	}
}

/*
TestSeed_Idempotent verifies that a second seed skips existing entries and
that passwords go through the credential scheme.
*/
func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := auth.NewMemoryUserRepository()
	books := catalog.NewMemoryRepository()
	board := discussion.NewMemoryRepository()
	targets := fixtures.Targets{
		Users:  users,
		Scheme: sec.BcryptScheme{Cost: 4},
		Books:  books,
		Board:  board,
	}

	require.NoError(t, fixtures.Seed(ctx, targets, logger))
	require.NoError(t, fixtures.Seed(ctx, targets, logger))

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := users.FindByEmail(ctx, "test@test.com")
	require.NoError(t, err)
	assert.NotEqual(t, "test123", stored.Password)
	assert.True(t, targets.Scheme.Verify("test123", stored.Password))

	all, err := books.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	threads, err := board.List(ctx, discussion.Query{})
	require.NoError(t, err)
	assert.Len(t, threads, 3)
}
