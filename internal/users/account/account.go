// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account assembles the "my page" view of the logged-in user: profile,
purchased books and the discussions they started or joined.

It owns no storage. Everything is read through the auth, catalog and
discussion services.
*/
package account

import (
	"context"

	"github.com/taibuivan/bookhub/internal/core/catalog"
	"github.com/taibuivan/bookhub/internal/core/discussion"
	"github.com/taibuivan/bookhub/internal/users/auth"
)

// # Views

// Activity groups the board threads of one user.
type Activity struct {
	Authored     []*discussion.Discussion `json:"authored"`
	Participated []*discussion.Discussion `json:"participated"`
}

// Overview is the full "my page" payload.
type Overview struct {
	Profile        *auth.Profile   `json:"profile"`
	PurchasedBooks []*catalog.Book `json:"purchasedBooks"`
	Activity
}

// # Sources

// ProfileSource resolves stored profiles.
type ProfileSource interface {
	Profile(context context.Context, userID string) (*auth.Profile, error)
}

// BookSource resolves catalogue books.
type BookSource interface {
	GetBook(context context.Context, id string) (*catalog.Book, error)
}

// BoardSource answers the per-user board queries.
type BoardSource interface {
	ByAuthor(context context.Context, userID string) ([]*discussion.Discussion, error)
	Participated(context context.Context, userID string) ([]*discussion.Discussion, error)
}
