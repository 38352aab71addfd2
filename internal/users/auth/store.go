// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for the user directory.
type UserRepository interface {

	/*
		FindByID returns the user with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when absent
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the user whose email matches exactly (case-sensitive).

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when absent
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create appends a user to the directory.

		Returns:
		  - error: apperr.Conflict when the id or email exists
	*/
	Create(context context.Context, user *User) error

	/*
		AddPurchase appends bookID to the user's purchase list unless it is
		already present.

		Returns:
		  - error: apperr.NotFound when the user is absent
	*/
	AddPurchase(context context.Context, userID, bookID string) error

	// Count returns the directory size.
	Count(context context.Context) (int, error)
}

// # Session Data Access

// SessionRepository stores live sessions. Records disappear on delete or
// once ttl elapses.
type SessionRepository interface {

	// Create stores a session for ttl.
	Create(context context.Context, session *Session, ttl time.Duration) error

	/*
		Find returns a live session.

		Returns:
		  - *Session: The stored session
		  - error: apperr.NotFound when absent, deleted or expired
	*/
	Find(context context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(context context.Context, id string) error
}
