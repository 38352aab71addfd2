// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookhub/internal/core/catalog"
	"github.com/taibuivan/bookhub/internal/core/discussion"
	"github.com/taibuivan/bookhub/internal/fixtures"
	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/sec"
	"github.com/taibuivan/bookhub/internal/users/auth"
	"github.com/taibuivan/bookhub/pkg/pointer"
)

var (
	cheolsu = &sec.Actor{ID: "1", Name: "Kim Cheolsu"}
	minsu   = &sec.Actor{ID: "2", Name: "Kim Minsu"}
)

// content20 is exactly MinContentLength characters.
const content20 = "abcdefghijklmnopqrst"

func newBoard(t *testing.T) *discussion.Service {
	t.Helper()

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

	return discussion.NewService(board, catalog.NewService(books, logger), logger)
}

func total(t *testing.T, service *discussion.Service) int {
	t.Helper()
	page, err := service.List(context.Background(), nil, discussion.Filter{}, 1)
	require.NoError(t, err)
	return page.Meta.Total
}

func ids(discussions []*discussion.Discussion) []string {
	out := make([]string, 0, len(discussions))
	for _, d := range discussions {
		out = append(out, d.ID)
	}
	return out
}

func TestList_NewestFirst(t *testing.T) {
	service := newBoard(t)

	page, err := service.List(context.Background(), nil, discussion.Filter{}, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, ids(page.Items))
	assert.Equal(t, 3, page.Meta.Total)
	assert.Equal(t, 1, page.Meta.TotalPages)
	for _, item := range page.Items {
		assert.Nil(t, item.IsLiked, "anonymous reads carry no like flag")
	}
}

func TestList_Pagination(t *testing.T) {
	service := newBoard(t)
	ctx := context.Background()

	// Twelve new threads on top of the three seeded ones. Newest first means
	// the created threads in reverse, then the seeded 1, 2, 3.
	var newestFirst []string
	for i := 0; i < 12; i++ {
		created, err := service.Create(ctx, cheolsu, discussion.CreateInput{
			BookID:  "1",
			Title:   fmt.Sprintf("Thread %02d", i),
			Content: content20,
		})
		require.NoError(t, err)
		newestFirst = append([]string{created.ID}, newestFirst...)
	}
	newestFirst = append(newestFirst, "1", "2", "3")

	tests := []struct {
		name string
		page int
		want []string
	}{
		{"first_page", 1, newestFirst[:10]},
		{"second_page", 2, newestFirst[10:15]},
		{"past_the_end", 3, []string{}},
		{"zero_means_first", 0, newestFirst[:10]},
		{"negative_means_first", -4, newestFirst[:10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := service.List(ctx, nil, discussion.Filter{}, tt.page)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ids(page.Items))
			assert.Equal(t, 15, page.Meta.Total)
			assert.Equal(t, 2, page.Meta.TotalPages)
		})
	}
}

func TestList_Filter(t *testing.T) {
	service := newBoard(t)

	tests := []struct {
		name   string
		filter discussion.Filter
		want   []string
	}{
		{"by_book", discussion.Filter{BookID: pointer.To("2")}, []string{"2"}},
		{"by_unknown_chapter", discussion.Filter{ChapterID: pointer.To("101")}, []string{}},
		{"search_title_case_insensitive", discussion.Filter{Search: "HOISTING"}, []string{"3"}},
		{"search_content", discussion.Filter{Search: "spring boot"}, []string{"1"}},
		{"search_author", discussion.Filter{Search: "minsu"}, []string{"2"}},
		{"book_and_search", discussion.Filter{BookID: pointer.To("1"), Search: "closures"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := service.List(context.Background(), nil, tt.filter, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(page.Items))
		})
	}
}

/*
TestCreate_Validation checks each rule in reporting order. Only the first
failure is reported and nothing is stored.
*/
func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   discussion.CreateInput
		message string
	}{
		{
			name:    "everything_missing_reports_title",
			input:   discussion.CreateInput{},
			message: discussion.MsgTitleRequired,
		},
		{
			name:    "title_51_characters",
			input:   discussion.CreateInput{BookID: "1", Title: strings.Repeat("a", 51), Content: content20},
			message: discussion.MsgTitleTooLong,
		},
		{
			name:    "no_book",
			input:   discussion.CreateInput{Title: "Question", Content: content20},
			message: discussion.MsgBookRequired,
		},
		{
			name:    "no_content",
			input:   discussion.CreateInput{BookID: "1", Title: "Question"},
			message: discussion.MsgContentRequired,
		},
		{
			name:    "content_19_characters",
			input:   discussion.CreateInput{BookID: "1", Title: "Question", Content: content20[:19]},
			message: discussion.MsgContentTooShort,
		},
		{
			name:    "unknown_book",
			input:   discussion.CreateInput{BookID: "99", Title: "Question", Content: content20},
			message: discussion.MsgBookUnknown,
		},
		{
			name:    "chapter_of_another_book",
			input:   discussion.CreateInput{BookID: "1", ChapterID: pointer.To("201"), Title: "Question", Content: content20},
			message: discussion.MsgChapterMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newBoard(t)

			created, err := service.Create(context.Background(), cheolsu, tt.input)
			require.Error(t, err)
			assert.Nil(t, created)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Len(t, appErr.Details, 1)

			assert.Equal(t, 3, total(t, service))
		})
	}
}

func TestCreate_Accepts(t *testing.T) {
	service := newBoard(t)
	ctx := context.Background()

	created, err := service.Create(ctx, cheolsu, discussion.CreateInput{
		BookID:    "1",
		ChapterID: pointer.To("102"),
		Title:     strings.Repeat("가", discussion.MaxTitleLength),
		Content:   content20,
	})
	require.NoError(t, err)

	assert.Equal(t, "Kim Cheolsu", created.Author)
	assert.Equal(t, "1", created.AuthorID)
	assert.Zero(t, created.Likes)
	assert.Empty(t, created.Comments)
	assert.Equal(t, 4, total(t, service))

	page, err := service.List(ctx, nil, discussion.Filter{}, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, page.Items[0].ID, "new thread is listed first")
}

func TestMutations_RequireLogin(t *testing.T) {
	service := newBoard(t)
	ctx := context.Background()

	_, err := service.Create(ctx, nil, discussion.CreateInput{BookID: "1", Title: "Question", Content: content20})
	assert.True(t, apperr.HasCode(err, apperr.CodeLoginRequired))

	_, err = service.AddComment(ctx, nil, "1", "Nice question")
	assert.True(t, apperr.HasCode(err, apperr.CodeLoginRequired))

	_, err = service.ToggleLike(ctx, nil, "1")
	assert.True(t, apperr.HasCode(err, apperr.CodeLoginRequired))
}

func TestAddComment(t *testing.T) {
	service := newBoard(t)
	ctx := context.Background()

	_, err := service.AddComment(ctx, minsu, "1", "   ")
	require.Error(t, err)
	assert.Equal(t, discussion.MsgCommentRequired, apperr.As(err).Message)

	thread, err := service.Get(ctx, minsu, "1")
	require.NoError(t, err)
	assert.Empty(t, thread.Comments)

	comment, err := service.AddComment(ctx, minsu, "1", "Try ports and adapters")
	require.NoError(t, err)
	assert.Equal(t, "Kim Minsu", comment.Author)

	thread, err = service.Get(ctx, minsu, "1")
	require.NoError(t, err)
	require.Len(t, thread.Comments, 1)
	assert.Equal(t, comment.ID, thread.Comments[0].ID)

	_, err = service.AddComment(ctx, minsu, "missing", "Hello there")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestToggleLike(t *testing.T) {
	service := newBoard(t)
	ctx := context.Background()

	first, err := service.ToggleLike(ctx, cheolsu, "1")
	require.NoError(t, err)
	assert.Equal(t, discussion.LikeState{Liked: true, Likes: 9}, *first)

	// Likes are tracked per user.
	other, err := service.Get(ctx, minsu, "1")
	require.NoError(t, err)
	assert.Equal(t, 9, other.Likes)
	assert.False(t, *other.IsLiked)

	mine, err := service.Get(ctx, cheolsu, "1")
	require.NoError(t, err)
	assert.True(t, *mine.IsLiked)

	second, err := service.ToggleLike(ctx, cheolsu, "1")
	require.NoError(t, err)
	assert.Equal(t, discussion.LikeState{Liked: false, Likes: 8}, *second)

	_, err = service.ToggleLike(ctx, cheolsu, "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestToggleLike_Pure(t *testing.T) {
	for _, liked := range []bool{true, false} {
		l, c := discussion.ToggleLike(discussion.ToggleLike(liked, 7))
		assert.Equal(t, liked, l)
		assert.Equal(t, 7, c)
	}
}

func TestAuthorAndParticipantQueries(t *testing.T) {
	service := newBoard(t)
	ctx := context.Background()

	authored, err := service.ByAuthor(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(authored))

	_, err = service.AddComment(ctx, minsu, "3", "Closures capture the scope")
	require.NoError(t, err)

	participated, err := service.Participated(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids(participated))
}

func TestTopForBook(t *testing.T) {
	service := newBoard(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := service.Create(ctx, minsu, discussion.CreateInput{
			BookID:  "1",
			Title:   fmt.Sprintf("Thread %d", i),
			Content: content20,
		})
		require.NoError(t, err)
	}

	top, err := service.TopForBook(ctx, minsu, "1", discussion.DefaultTopForBook)
	require.NoError(t, err)
	assert.Len(t, top, discussion.DefaultTopForBook)
	for _, thread := range top {
		assert.Equal(t, "1", thread.BookID)
		assert.NotNil(t, thread.IsLiked)
	}
}
