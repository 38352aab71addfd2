// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/database/schema"
	"github.com/taibuivan/bookhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over the market schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	bookColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		schema.MarketBook.ID, schema.MarketBook.Title, schema.MarketBook.Author,
		schema.MarketBook.Description, schema.MarketBook.CoverImage, schema.MarketBook.PublishYear,
		schema.MarketBook.Categories, schema.MarketBook.Likes,
	)
	listingColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		schema.MarketListing.BookID, schema.MarketListing.ID, schema.MarketListing.Price,
		schema.MarketListing.Condition, schema.MarketListing.SellerID, schema.MarketListing.SellerName,
	)
	chapterColumns = fmt.Sprintf("%s, %s, %s",
		schema.MarketChapter.BookID, schema.MarketChapter.ID, schema.MarketChapter.Title,
	)
)

// # Queries

/*
List retrieves every book followed by all listings and chapters, and
assembles them in catalogue order.

Parameters:
  - context: context.Context

Returns:
  - []*Book: Hydrated books
  - error: Query failures
*/
func (repository *PostgresRepository) List(context context.Context) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		bookColumns, schema.MarketBook.Table, schema.MarketBook.Position)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_catalog_repo_list_failed: %w", err)
	}

	books, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, fmt.Errorf("postgres_catalog_repo_list_scan_failed: %w", err)
	}

	byID := make(map[string]*Book, len(books))
	for _, book := range books {
		byID[book.ID] = book
	}

	if err := repository.attach(context, byID, "", nil); err != nil {
		return nil, err
	}

	return books, nil
}

/*
FindByID retrieves a single hydrated book.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Book: Hydrated book
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.MarketBook.Table, schema.MarketBook.ID)

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Book", "postgres_catalog_repo_find_failed")
	}

	book, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if err != nil {
		return nil, dberr.Wrap(err, "Book", "postgres_catalog_repo_find_failed")
	}

	filter := fmt.Sprintf("WHERE %s = $1", schema.MarketListing.BookID)
	if err := repository.attach(context, map[string]*Book{book.ID: book}, filter, []any{id}); err != nil {
		return nil, err
	}

	return book, nil
}

// attach loads listings and chapters for the given books. where is applied to
// both child queries and must only reference the shared bookid column.
func (repository *PostgresRepository) attach(context context.Context, byID map[string]*Book, where string, args []any) error {
	listingQuery := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s`,
		listingColumns, schema.MarketListing.Table, where, schema.MarketListing.Position)

	rows, err := repository.pool.Query(context, listingQuery, args...)
	if err != nil {
		return fmt.Errorf("postgres_catalog_repo_listings_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, condition string
		var listing Listing
		if err := rows.Scan(&bookID, &listing.ID, &listing.Price, &condition, &listing.SellerID, &listing.SellerName); err != nil {
			return fmt.Errorf("postgres_catalog_repo_listings_scan_failed: %w", err)
		}
		listing.Condition = Condition(condition)
		if book, ok := byID[bookID]; ok {
			book.Prices = append(book.Prices, listing)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres_catalog_repo_listings_failed: %w", err)
	}

	chapterQuery := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s`,
		chapterColumns, schema.MarketChapter.Table, where, schema.MarketChapter.Position)

	chapterRows, err := repository.pool.Query(context, chapterQuery, args...)
	if err != nil {
		return fmt.Errorf("postgres_catalog_repo_chapters_failed: %w", err)
	}
	defer chapterRows.Close()

	for chapterRows.Next() {
		var chapter Chapter
		if err := chapterRows.Scan(&chapter.BookID, &chapter.ID, &chapter.Title); err != nil {
			return fmt.Errorf("postgres_catalog_repo_chapters_scan_failed: %w", err)
		}
		if book, ok := byID[chapter.BookID]; ok {
			book.Chapters = append(book.Chapters, chapter)
		}
	}

	return chapterRows.Err()
}

// # Mutations

/*
Create inserts a book with its listings and chapters in one transaction.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: apperr.Conflict for duplicate ids, or execution failures
*/
func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	err := pgx.BeginFunc(context, repository.pool, func(tx pgx.Tx) error {
		insertBook := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			schema.MarketBook.Table, bookColumns)
		if _, err := tx.Exec(context, insertBook,
			book.ID, book.Title, book.Author, book.Description, book.CoverImage,
			book.PublishYear, book.Categories, book.Likes,
		); err != nil {
			return err
		}

		insertListing := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
			schema.MarketListing.Table, listingColumns)
		for _, listing := range book.Prices {
			if _, err := tx.Exec(context, insertListing,
				book.ID, listing.ID, listing.Price, string(listing.Condition), listing.SellerID, listing.SellerName,
			); err != nil {
				return err
			}
		}

		insertChapter := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3)`,
			schema.MarketChapter.Table, chapterColumns)
		for _, chapter := range book.Chapters {
			if _, err := tx.Exec(context, insertChapter, book.ID, chapter.ID, chapter.Title); err != nil {
				return err
			}
		}

		return nil
	})

	return dberr.Wrap(err, "Book", "postgres_catalog_repo_create_failed")
}

/*
AddListing inserts a listing when the book exists.

Parameters:
  - context: context.Context
  - bookID: string
  - listing: Listing

Returns:
  - error: apperr.NotFound when the book is absent
*/
func (repository *PostgresRepository) AddListing(context context.Context, bookID string, listing Listing) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.MarketListing.Table, listingColumns,
		schema.MarketBook.Table, schema.MarketBook.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		bookID, listing.ID, listing.Price, string(listing.Condition), listing.SellerID, listing.SellerName,
	)
	if err != nil {
		return dberr.Wrap(err, "Listing", "postgres_catalog_repo_add_listing_failed")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

// scanBook maps one market.book row without its children.
func scanBook(row pgx.CollectableRow) (*Book, error) {
	book := &Book{Prices: []Listing{}, Chapters: []Chapter{}}
	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.Description, &book.CoverImage,
		&book.PublishYear, &book.Categories, &book.Likes,
	)
	return book, err
}
