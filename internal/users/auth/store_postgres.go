// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/database/schema"
	"github.com/taibuivan/bookhub/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] over users.account and
// users.purchase.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository constructs a new [PostgresUserRepository].
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
FindByID retrieves a user and their purchase list.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.ID, id)
}

/*
FindByEmail retrieves a user by exact email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.Email, email)
}

func (repository *PostgresUserRepository) findBy(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s,
		       COALESCE(ARRAY(SELECT p.%s FROM %s p WHERE p.%s = a.%s ORDER BY p.%s), '{}')
		FROM %s a
		WHERE a.%s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserPurchase.BookID, schema.UserPurchase.Table, schema.UserPurchase.UserID, schema.UserAccount.ID, schema.UserPurchase.Position,
		schema.UserAccount.Table,
		column,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.PurchasedBooks,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_repo_find_failed")
	}

	return user, nil
}

/*
Create inserts the account and any pre-existing purchases.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict for a taken email, or execution failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	err := pgx.BeginFunc(context, repository.pool, func(tx pgx.Tx) error {
		insertAccount := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
			schema.UserAccount.Table,
			schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email, schema.UserAccount.Password,
		)
		if _, err := tx.Exec(context, insertAccount, user.ID, user.Name, user.Email, user.Password); err != nil {
			return err
		}

		for _, bookID := range user.PurchasedBooks {
			if err := insertPurchase(context, tx, user.ID, bookID); err != nil {
				return err
			}
		}
		return nil
	})

	wrapped := dberr.Wrap(err, "User", "postgres_user_repo_create_failed")
	if apperr.HasCode(wrapped, apperr.CodeConflict) {
		return apperr.Conflict("Email is already registered")
	}
	return wrapped
}

/*
AddPurchase records a purchase once per user and book.

Parameters:
  - context: context.Context
  - userID: string
  - bookID: string

Returns:
  - error: apperr.NotFound when the user or book is absent
*/
func (repository *PostgresUserRepository) AddPurchase(context context.Context, userID, bookID string) error {
	return dberr.Wrap(insertPurchase(context, repository.pool, userID, bookID), "User", "postgres_user_repo_add_purchase_failed")
}

// Count returns the number of accounts.
func (repository *PostgresUserRepository) Count(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.UserAccount.Table)

	var count int
	if err := repository.pool.QueryRow(context, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_user_repo_count_failed: %w", err)
	}
	return count, nil
}

// executor is satisfied by both *pgxpool.Pool and pgx.Tx.
type executor interface {
	Exec(context context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertPurchase(context context.Context, db executor, userID, bookID string) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.UserPurchase.Table, schema.UserPurchase.UserID, schema.UserPurchase.BookID)
	_, err := db.Exec(context, query, userID, bookID)
	return err
}
