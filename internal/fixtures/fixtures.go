// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fixtures holds the static seed data of the marketplace and board.

The data is embedded as YAML and loaded into whichever repositories are
active, so the in-memory and PostgreSQL backends start from the same state.
*/
package fixtures

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/bookhub/internal/core/catalog"
	"github.com/taibuivan/bookhub/internal/core/discussion"
	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/sec"
	"github.com/taibuivan/bookhub/internal/users/auth"
	"github.com/taibuivan/bookhub/pkg/slice"
)

//go:embed fixtures.yaml
var document []byte

// # Document Schema

type userDoc struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Email          string   `yaml:"email"`
	Password       string   `yaml:"password"`
	PurchasedBooks []string `yaml:"purchasedBooks"`
}

type listingDoc struct {
	ID         string `yaml:"id"`
	Price      int64  `yaml:"price"`
	Condition  string `yaml:"condition"`
	SellerID   string `yaml:"sellerId"`
	SellerName string `yaml:"sellerName"`
}

type chapterDoc struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

type bookDoc struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Author      string       `yaml:"author"`
	Description string       `yaml:"description"`
	CoverImage  string       `yaml:"coverImage"`
	PublishYear int          `yaml:"publishYear"`
	Categories  []string     `yaml:"categories"`
	Likes       int          `yaml:"likes"`
	Prices      []listingDoc `yaml:"prices"`
	Chapters    []chapterDoc `yaml:"chapters"`
}

type discussionDoc struct {
	ID        string    `yaml:"id"`
	BookID    string    `yaml:"bookId"`
	ChapterID *string   `yaml:"chapterId"`
	Title     string    `yaml:"title"`
	Content   string    `yaml:"content"`
	Author    string    `yaml:"author"`
	AuthorID  string    `yaml:"authorId"`
	CreatedAt time.Time `yaml:"createdAt"`
	Likes     int       `yaml:"likes"`
}

// # Loaded Data

// Set is the decoded seed data. User passwords are still plain text.
type Set struct {
	Users       []*auth.User
	Books       []*catalog.Book
	Discussions []*discussion.Discussion
}

// Load decodes the embedded document.
func Load() (*Set, error) {
	var raw struct {
		Users       []userDoc       `yaml:"users"`
		Books       []bookDoc       `yaml:"books"`
		Discussions []discussionDoc `yaml:"discussions"`
	}
	if err := yaml.Unmarshal(document, &raw); err != nil {
		return nil, fmt.Errorf("fixtures_decode_failed: %w", err)
	}

	return &Set{
		Users:       slice.Map(raw.Users, userDoc.toUser),
		Books:       slice.Map(raw.Books, bookDoc.toBook),
		Discussions: slice.Map(raw.Discussions, discussionDoc.toDiscussion),
	}, nil
}

func (doc userDoc) toUser() *auth.User {
	return &auth.User{
		ID:             doc.ID,
		Name:           doc.Name,
		Email:          doc.Email,
		Password:       doc.Password,
		PurchasedBooks: append([]string{}, doc.PurchasedBooks...),
	}
}

func (doc bookDoc) toBook() *catalog.Book {
	return &catalog.Book{
		ID:          doc.ID,
		Title:       doc.Title,
		Author:      doc.Author,
		Description: doc.Description,
		CoverImage:  doc.CoverImage,
		PublishYear: doc.PublishYear,
		Categories:  append([]string{}, doc.Categories...),
		Likes:       doc.Likes,
		Prices: slice.Map(doc.Prices, func(listing listingDoc) catalog.Listing {
			return catalog.Listing{
				ID:         listing.ID,
				Price:      listing.Price,
				Condition:  catalog.Condition(listing.Condition),
				SellerID:   listing.SellerID,
				SellerName: listing.SellerName,
			}
		}),
		Chapters: slice.Map(doc.Chapters, func(chapter chapterDoc) catalog.Chapter {
			return catalog.Chapter{ID: chapter.ID, BookID: doc.ID, Title: chapter.Title}
		}),
	}
}

func (doc discussionDoc) toDiscussion() *discussion.Discussion {
	return &discussion.Discussion{
		ID:        doc.ID,
		BookID:    doc.BookID,
		ChapterID: doc.ChapterID,
		Title:     doc.Title,
		Content:   doc.Content,
		Author:    doc.Author,
		AuthorID:  doc.AuthorID,
		CreatedAt: doc.CreatedAt.UTC(),
		Likes:     doc.Likes,
		Comments:  []discussion.Comment{},
	}
}

// # Seeding

// Targets names the repositories to seed.
type Targets struct {
	Users  auth.UserRepository
	Scheme sec.CredentialScheme
	Books  catalog.Repository
	Board  discussion.Repository
}

/*
Seed loads the fixture set into targets.

Description: Entries that already exist are skipped, so seeding a persistent
store on every start is safe. Books go first because purchases and
discussions reference them.

Parameters:
  - context: context.Context
  - targets: Targets (All repositories and the credential scheme are required)
  - logger: *slog.Logger

Returns:
  - error: Decode, hashing or storage failures
*/
func Seed(context context.Context, targets Targets, logger *slog.Logger) error {
	set, err := Load()
	if err != nil {
		return err
	}

	var seeded, skipped int
	record := func(err error) error {
		switch {
		case err == nil:
			seeded++
		case apperr.HasCode(err, apperr.CodeConflict):
			skipped++
		default:
			return err
		}
		return nil
	}

	for _, book := range set.Books {
		if err := record(targets.Books.Create(context, book)); err != nil {
			return fmt.Errorf("fixtures_seed_book_failed: %w", err)
		}
	}

	for _, user := range set.Users {
		hashed, err := targets.Scheme.Hash(user.Password)
		if err != nil {
			return fmt.Errorf("fixtures_hash_password_failed: %w", err)
		}
		user.Password = hashed

		if err := record(targets.Users.Create(context, user)); err != nil {
			return fmt.Errorf("fixtures_seed_user_failed: %w", err)
		}
	}

	for _, thread := range set.Discussions {
		if err := record(targets.Board.Create(context, thread)); err != nil {
			return fmt.Errorf("fixtures_seed_discussion_failed: %w", err)
		}
	}

	logger.Info("fixtures_seeded",
		slog.Int("seeded", seeded),
		slog.Int("skipped", skipped),
	)
	return nil
}
