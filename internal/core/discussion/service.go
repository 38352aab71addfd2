// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/bookhub/internal/platform/sec"
	"github.com/taibuivan/bookhub/internal/platform/validate"
	"github.com/taibuivan/bookhub/pkg/pointer"
	"github.com/taibuivan/bookhub/pkg/slice"
	"github.com/taibuivan/bookhub/pkg/uuidv7"
)

const (
	FieldTitle     = "title"
	FieldBookID    = "bookId"
	FieldChapterID = "chapterId"
	FieldContent   = "content"
)

// User-facing validation messages, in reporting priority.
const (
	MsgTitleRequired   = "Title is required"
	MsgTitleTooLong    = "Title must be 50 characters or fewer"
	MsgBookRequired    = "Please select a book"
	MsgContentRequired = "Content is required"
	MsgContentTooShort = "Content must be at least 20 characters"
	MsgBookUnknown     = "Selected book does not exist"
	MsgChapterMismatch = "Selected chapter does not belong to the book"
	MsgCommentRequired = "Comment content is required"
)

// DefaultTopForBook is how many threads the book page previews.
const DefaultTopForBook = 5

// CatalogLookup checks discussion references against the catalogue.
type CatalogLookup interface {
	BookExists(context context.Context, bookID string) (bool, error)
	ChapterBelongs(context context.Context, bookID, chapterID string) (bool, error)
}

// # Service Layer

// Service orchestrates the board use cases.
type Service struct {
	repository Repository
	catalog    CatalogLookup
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service].
func NewService(repository Repository, catalog CatalogLookup, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		catalog:    catalog,
		logger:     logger,
		now:        time.Now,
	}
}

// # Listing

/*
List returns one page of the board, newest first.

Parameters:
  - context: context.Context
  - viewer: *sec.Actor (May be nil; when set, IsLiked is filled)
  - filter: Filter
  - page: int (1-indexed; values below 1 mean 1)

Returns:
  - Page: Items and pagination metadata
  - error: Storage failures
*/
func (service *Service) List(context context.Context, viewer *sec.Actor, filter Filter, page int) (Page, error) {
	discussions, err := service.repository.List(context, Query{BookID: filter.BookID, ChapterID: filter.ChapterID})
	if err != nil {
		return Page{}, fmt.Errorf("discussion_service_list_failed: %w", err)
	}

	result := Paginate(discussions, filter, page)
	if err := service.markLiked(context, viewer, result.Items); err != nil {
		return Page{}, err
	}
	return result, nil
}

// ByAuthor returns the discussions userID started, newest first.
func (service *Service) ByAuthor(context context.Context, userID string) ([]*Discussion, error) {
	discussions, err := service.repository.List(context, Query{AuthorID: &userID})
	if err != nil {
		return nil, fmt.Errorf("discussion_service_by_author_failed: %w", err)
	}
	SortNewestFirst(discussions)
	return discussions, nil
}

// Participated returns the discussions userID commented on, newest first.
func (service *Service) Participated(context context.Context, userID string) ([]*Discussion, error) {
	discussions, err := service.repository.List(context, Query{CommenterID: &userID})
	if err != nil {
		return nil, fmt.Errorf("discussion_service_participated_failed: %w", err)
	}
	SortNewestFirst(discussions)
	return discussions, nil
}

// TopForBook returns the newest limit discussions of a book.
func (service *Service) TopForBook(context context.Context, viewer *sec.Actor, bookID string, limit int) ([]*Discussion, error) {
	discussions, err := service.repository.List(context, Query{BookID: &bookID})
	if err != nil {
		return nil, fmt.Errorf("discussion_service_top_for_book_failed: %w", err)
	}

	SortNewestFirst(discussions)
	if len(discussions) > limit {
		discussions = discussions[:limit]
	}

	if err := service.markLiked(context, viewer, discussions); err != nil {
		return nil, err
	}
	return discussions, nil
}

// Get returns one discussion with its comments.
func (service *Service) Get(context context.Context, viewer *sec.Actor, id string) (*Discussion, error) {
	discussion, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.markLiked(context, viewer, []*Discussion{discussion}); err != nil {
		return nil, err
	}
	return discussion, nil
}

// markLiked fills IsLiked for a known viewer and leaves it nil otherwise.
func (service *Service) markLiked(context context.Context, viewer *sec.Actor, discussions []*Discussion) error {
	if viewer == nil || len(discussions) == 0 {
		return nil
	}

	ids := slice.Map(discussions, func(discussion *Discussion) string { return discussion.ID })
	liked, err := service.repository.LikedBy(context, viewer.ID, ids)
	if err != nil {
		return fmt.Errorf("discussion_service_liked_by_failed: %w", err)
	}

	for _, discussion := range discussions {
		discussion.IsLiked = pointer.To(liked[discussion.ID])
	}
	return nil
}

// # Mutations

// CreateInput holds the new-discussion form.
type CreateInput struct {
	BookID    string
	ChapterID *string
	Title     string
	Content   string
}

/*
Create starts a discussion on behalf of author.

Description: Validation stops at the first failure, in this order: title
present, title length, book selected, content present, content length,
book exists, chapter belongs to the book.

Parameters:
  - context: context.Context
  - author: *sec.Actor (nil fails with LOGIN_REQUIRED)
  - input: CreateInput

Returns:
  - *Discussion: Stored discussion with zero likes and no comments
  - error: LOGIN_REQUIRED, VALIDATION_ERROR or storage failures
*/
func (service *Service) Create(context context.Context, author *sec.Actor, input CreateInput) (*Discussion, error) {
	if err := sec.RequireActor(author); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.RequiredMsg(FieldTitle, input.Title, MsgTitleRequired).
		MaxLenMsg(FieldTitle, input.Title, MaxTitleLength, MsgTitleTooLong).
		RequiredMsg(FieldBookID, input.BookID, MsgBookRequired).
		RequiredMsg(FieldContent, input.Content, MsgContentRequired).
		MinLenMsg(FieldContent, input.Content, MinContentLength, MsgContentTooShort)
	if err := validator.FirstErr(); err != nil {
		return nil, err
	}

	if err := service.checkReferences(context, validator, input); err != nil {
		return nil, err
	}
	if err := validator.FirstErr(); err != nil {
		return nil, err
	}

	chapterID := input.ChapterID
	if chapterID != nil && *chapterID == "" {
		chapterID = nil
	}

	discussion := &Discussion{
		ID:        uuidv7.New(),
		BookID:    input.BookID,
		ChapterID: chapterID,
		Title:     input.Title,
		Content:   input.Content,
		Author:    author.Name,
		AuthorID:  author.ID,
		CreatedAt: service.now(),
		Comments:  []Comment{},
	}

	if err := service.repository.Create(context, discussion); err != nil {
		return nil, fmt.Errorf("discussion_service_create_failed: %w", err)
	}

	service.logger.Info("discussion_created",
		slog.String("discussion_id", discussion.ID),
		slog.String("book_id", discussion.BookID),
		slog.String("author_id", author.ID),
	)

	return discussion, nil
}

// checkReferences adds the book and chapter checks to validator.
func (service *Service) checkReferences(context context.Context, validator *validate.Validator, input CreateInput) error {
	exists, err := service.catalog.BookExists(context, input.BookID)
	if err != nil {
		return fmt.Errorf("discussion_service_book_lookup_failed: %w", err)
	}
	validator.Custom(FieldBookID, !exists, MsgBookUnknown)
	if !exists || input.ChapterID == nil || *input.ChapterID == "" {
		return nil
	}

	belongs, err := service.catalog.ChapterBelongs(context, input.BookID, *input.ChapterID)
	if err != nil {
		return fmt.Errorf("discussion_service_chapter_lookup_failed: %w", err)
	}
	validator.Custom(FieldChapterID, !belongs, MsgChapterMismatch)
	return nil
}

/*
AddComment appends exactly one comment to a discussion.

Parameters:
  - context: context.Context
  - author: *sec.Actor (nil fails with LOGIN_REQUIRED)
  - discussionID: string
  - content: string (Must not be blank)

Returns:
  - *Comment: The stored comment
  - error: LOGIN_REQUIRED, VALIDATION_ERROR, NOT_FOUND or storage failures
*/
func (service *Service) AddComment(context context.Context, author *sec.Actor, discussionID, content string) (*Comment, error) {
	if err := sec.RequireActor(author); err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).RequiredMsg(FieldContent, content, MsgCommentRequired).FirstErr(); err != nil {
		return nil, err
	}

	comment := Comment{
		ID:           uuidv7.New(),
		DiscussionID: discussionID,
		Content:      content,
		Author:       author.Name,
		AuthorID:     author.ID,
		CreatedAt:    service.now(),
	}

	if err := service.repository.AddComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_added",
		slog.String("comment_id", comment.ID),
		slog.String("discussion_id", discussionID),
		slog.String("author_id", author.ID),
	)

	return &comment, nil
}

// LikeState is the viewer's like flag and the like count after a toggle.
type LikeState struct {
	Liked bool `json:"isLiked"`
	Likes int  `json:"likes"`
}

// ToggleLike flips the viewer's like on a discussion.
func (service *Service) ToggleLike(context context.Context, viewer *sec.Actor, discussionID string) (*LikeState, error) {
	if err := sec.RequireActor(viewer); err != nil {
		return nil, err
	}

	liked, likes, err := service.repository.ToggleLike(context, discussionID, viewer.ID)
	if err != nil {
		return nil, err
	}

	service.logger.Debug("discussion_like_toggled",
		slog.String("discussion_id", discussionID),
		slog.String("user_id", viewer.ID),
		slog.Bool("liked", liked),
	)

	return &LikeState{Liked: liked, Likes: likes}, nil
}
