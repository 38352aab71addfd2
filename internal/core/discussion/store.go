// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion

import "context"

// Query narrows what [Repository.List] loads. Nil fields do not narrow.
type Query struct {
	BookID      *string
	ChapterID   *string
	AuthorID    *string
	CommenterID *string
}

// Repository defines the data access contract for the board.
type Repository interface {

	/*
		List returns the discussions matching q, with their comments, in no
		particular order.

		Parameters:
		  - context: context.Context
		  - q: Query

		Returns:
		  - []*Discussion: Hydrated discussions
		  - error: Storage failures
	*/
	List(context context.Context, q Query) ([]*Discussion, error)

	// FindByID returns one discussion with its comments, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Discussion, error)

	// Create stores a new discussion and its comments.
	Create(context context.Context, discussion *Discussion) error

	// AddComment appends a comment, or returns apperr.NotFound for an unknown
	// discussion.
	AddComment(context context.Context, comment Comment) error

	/*
		ToggleLike flips userID's membership in the discussion's liker set and
		moves the stored like count accordingly, atomically.

		Returns:
		  - bool: Whether the user likes the discussion afterwards
		  - int: The like count afterwards
		  - error: apperr.NotFound for an unknown discussion
	*/
	ToggleLike(context context.Context, discussionID, userID string) (bool, int, error)

	// LikedBy returns the subset of discussionIDs that userID likes.
	LikedBy(context context.Context, userID string, discussionIDs []string) (map[string]bool, error)
}
