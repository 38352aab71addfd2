// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package discussion implements the discussion board: threads attached to a book
and optionally to one of its chapters, with comments and per-user likes.

There are no edit, delete, close or lock operations.
*/
package discussion

import (
	"cmp"
	"slices"
	"time"

	"github.com/taibuivan/bookhub/pkg/pagination"
	"github.com/taibuivan/bookhub/pkg/pointer"
	"github.com/taibuivan/bookhub/pkg/slice"
	"github.com/taibuivan/bookhub/pkg/textmatch"
)

// PageSize is the fixed number of discussions per page.
const PageSize = 10

// Length limits, counted in characters.
const (
	MaxTitleLength   = 50
	MinContentLength = 20
)

// # Domain Entities

// Comment is a reply on a discussion.
type Comment struct {
	ID           string    `json:"id"`
	DiscussionID string    `json:"discussionId"`
	Content      string    `json:"content"`
	Author       string    `json:"author"`
	AuthorID     string    `json:"authorId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Discussion is a thread. ChapterID is nil for book-wide threads. IsLiked is
// only set on reads made for a known viewer.
type Discussion struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	ChapterID *string   `json:"chapterId,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     int       `json:"likes"`
	IsLiked   *bool     `json:"isLiked,omitempty"`
	Comments  []Comment `json:"comments"`
}

// Clone returns a deep copy.
func (discussion *Discussion) Clone() *Discussion {
	clone := *discussion
	if discussion.ChapterID != nil {
		clone.ChapterID = pointer.To(*discussion.ChapterID)
	}
	if discussion.IsLiked != nil {
		clone.IsLiked = pointer.To(*discussion.IsLiked)
	}
	clone.Comments = append([]Comment{}, discussion.Comments...)
	return &clone
}

// CommentedBy reports whether userID wrote at least one comment.
func (discussion *Discussion) CommentedBy(userID string) bool {
	return slices.ContainsFunc(discussion.Comments, func(comment Comment) bool {
		return comment.AuthorID == userID
	})
}

// # Pure Operations

// ToggleLike flips the liked flag and moves the count by one in the matching
// direction. Applying it twice returns the original pair.
func ToggleLike(liked bool, count int) (bool, int) {
	if liked {
		return false, count - 1
	}
	return true, count + 1
}

// Filter narrows a board listing. Nil fields and an empty Search do not
// narrow.
type Filter struct {
	BookID    *string
	ChapterID *string
	Search    string
}

// Matches applies the exact book, exact chapter and case-insensitive
// title/content/author checks in that order.
func (filter Filter) Matches(discussion *Discussion) bool {
	if filter.BookID != nil && discussion.BookID != *filter.BookID {
		return false
	}
	if filter.ChapterID != nil && !pointer.Equal(discussion.ChapterID, filter.ChapterID) {
		return false
	}
	return textmatch.New(filter.Search).Any(discussion.Title, discussion.Content, discussion.Author)
}

// SortNewestFirst orders by descending creation time. Ties are broken by
// descending id so the result never depends on insertion position.
func SortNewestFirst(discussions []*Discussion) {
	slices.SortFunc(discussions, func(a, b *Discussion) int {
		if order := b.CreatedAt.Compare(a.CreatedAt); order != 0 {
			return order
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

// Page is one page of a board listing.
type Page struct {
	Items []*Discussion
	Meta  pagination.Meta
}

// Paginate sorts, filters and slices discussions. Pages start at 1; lower
// values are treated as 1 and pages past the end are empty.
func Paginate(discussions []*Discussion, filter Filter, page int) Page {
	matched := slice.Filter(discussions, filter.Matches)
	SortNewestFirst(matched)

	params := pagination.New(page, PageSize)
	start, end := params.Window(len(matched))

	return Page{
		Items: matched[start:end],
		Meta:  pagination.NewMeta(params.Page, PageSize, len(matched)),
	}
}
