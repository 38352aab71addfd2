// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/database/schema"
	"github.com/taibuivan/bookhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over the forum schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	discussionColumns = strings.Join(schema.ForumDiscussion.Columns(), ", ")
	commentColumns    = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		schema.ForumComment.ID, schema.ForumComment.DiscussionID, schema.ForumComment.Content,
		schema.ForumComment.AuthorName, schema.ForumComment.AuthorID, schema.ForumComment.CreatedAt,
	)
)

// # Queries

/*
List selects discussions narrowed by q, then loads their comments.

Parameters:
  - context: context.Context
  - q: Query

Returns:
  - []*Discussion: Hydrated discussions
  - error: Query failures
*/
func (repository *PostgresRepository) List(context context.Context, q Query) ([]*Discussion, error) {
	var conditions []string
	var args []any

	where := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	where(schema.ForumDiscussion.BookID, q.BookID)
	where(schema.ForumDiscussion.ChapterID, q.ChapterID)
	where(schema.ForumDiscussion.AuthorID, q.AuthorID)

	if q.CommenterID != nil {
		args = append(args, *q.CommenterID)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (SELECT 1 FROM %s c WHERE c.%s = %s.%s AND c.%s = $%d)`,
			schema.ForumComment.Table, schema.ForumComment.DiscussionID,
			schema.ForumDiscussion.Table, schema.ForumDiscussion.ID,
			schema.ForumComment.AuthorID, len(args),
		))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, discussionColumns, schema.ForumDiscussion.Table)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_discussion_repo_list_failed: %w", err)
	}

	discussions, err := pgx.CollectRows(rows, scanDiscussion)
	if err != nil {
		return nil, fmt.Errorf("postgres_discussion_repo_list_scan_failed: %w", err)
	}

	if err := repository.attachComments(context, discussions); err != nil {
		return nil, err
	}

	return discussions, nil
}

/*
FindByID retrieves one discussion and its comments.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Discussion: Hydrated discussion
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Discussion, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		discussionColumns, schema.ForumDiscussion.Table, schema.ForumDiscussion.ID)

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Discussion", "postgres_discussion_repo_find_failed")
	}

	discussion, err := pgx.CollectExactlyOneRow(rows, scanDiscussion)
	if err != nil {
		return nil, dberr.Wrap(err, "Discussion", "postgres_discussion_repo_find_failed")
	}

	if err := repository.attachComments(context, []*Discussion{discussion}); err != nil {
		return nil, err
	}

	return discussion, nil
}

func (repository *PostgresRepository) attachComments(context context.Context, discussions []*Discussion) error {
	if len(discussions) == 0 {
		return nil
	}

	byID := make(map[string]*Discussion, len(discussions))
	ids := make([]string, 0, len(discussions))
	for _, discussion := range discussions {
		byID[discussion.ID] = discussion
		ids = append(ids, discussion.ID)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) ORDER BY %s`,
		commentColumns, schema.ForumComment.Table, schema.ForumComment.DiscussionID, schema.ForumComment.Position)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return fmt.Errorf("postgres_discussion_repo_comments_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var comment Comment
		if err := rows.Scan(&comment.ID, &comment.DiscussionID, &comment.Content,
			&comment.Author, &comment.AuthorID, &comment.CreatedAt); err != nil {
			return fmt.Errorf("postgres_discussion_repo_comments_scan_failed: %w", err)
		}
		if discussion, ok := byID[comment.DiscussionID]; ok {
			discussion.Comments = append(discussion.Comments, comment)
		}
	}

	return rows.Err()
}

// # Mutations

/*
Create inserts a discussion and its comments in one transaction.

Parameters:
  - context: context.Context
  - discussion: *Discussion

Returns:
  - error: apperr.Conflict, apperr.NotFound for an unknown book, or execution failures
*/
func (repository *PostgresRepository) Create(context context.Context, discussion *Discussion) error {
	err := pgx.BeginFunc(context, repository.pool, func(tx pgx.Tx) error {
		insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			schema.ForumDiscussion.Table, discussionColumns)
		if _, err := tx.Exec(context, insert,
			discussion.ID, discussion.BookID, discussion.ChapterID, discussion.Title, discussion.Content,
			discussion.AuthorID, discussion.Author, discussion.Likes, discussion.CreatedAt,
		); err != nil {
			return err
		}

		for _, comment := range discussion.Comments {
			if err := insertComment(context, tx, comment); err != nil {
				return err
			}
		}
		return nil
	})

	return dberr.Wrap(err, "Discussion", "postgres_discussion_repo_create_failed")
}

/*
AddComment appends a comment to an existing discussion.

Parameters:
  - context: context.Context
  - comment: Comment

Returns:
  - error: apperr.NotFound for an unknown discussion
*/
func (repository *PostgresRepository) AddComment(context context.Context, comment Comment) error {
	wrapped := dberr.Wrap(insertComment(context, repository.pool, comment), "Comment", "postgres_discussion_repo_add_comment_failed")
	if apperr.HasCode(wrapped, apperr.CodeNotFound) {
		return apperr.NotFound("Discussion")
	}
	return wrapped
}

/*
ToggleLike flips the liker row and adjusts the stored count in one transaction.
The discussion row is locked so concurrent toggles serialize.

Parameters:
  - context: context.Context
  - discussionID: string
  - userID: string

Returns:
  - bool: Liked afterwards
  - int: Like count afterwards
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) ToggleLike(context context.Context, discussionID, userID string) (bool, int, error) {
	var liked bool
	var likes int

	err := pgx.BeginFunc(context, repository.pool, func(tx pgx.Tx) error {
		lock := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
			schema.ForumDiscussion.Likes, schema.ForumDiscussion.Table, schema.ForumDiscussion.ID)
		if err := tx.QueryRow(context, lock, discussionID).Scan(&likes); err != nil {
			return err
		}

		remove := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.ForumDiscussionLike.Table, schema.ForumDiscussionLike.DiscussionID, schema.ForumDiscussionLike.UserID)
		tag, err := tx.Exec(context, remove, discussionID, userID)
		if err != nil {
			return err
		}

		liked, likes = ToggleLike(tag.RowsAffected() == 1, likes)

		if liked {
			add := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
				schema.ForumDiscussionLike.Table, schema.ForumDiscussionLike.DiscussionID, schema.ForumDiscussionLike.UserID)
			if _, err := tx.Exec(context, add, discussionID, userID); err != nil {
				return err
			}
		}

		update := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
			schema.ForumDiscussion.Table, schema.ForumDiscussion.Likes, schema.ForumDiscussion.ID)
		_, err = tx.Exec(context, update, discussionID, likes)
		return err
	})

	if err != nil {
		return false, 0, dberr.Wrap(err, "Discussion", "postgres_discussion_repo_toggle_like_failed")
	}
	return liked, likes, nil
}

// LikedBy returns which of discussionIDs userID likes.
func (repository *PostgresRepository) LikedBy(context context.Context, userID string, discussionIDs []string) (map[string]bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = ANY($2)`,
		schema.ForumDiscussionLike.DiscussionID, schema.ForumDiscussionLike.Table,
		schema.ForumDiscussionLike.UserID, schema.ForumDiscussionLike.DiscussionID)

	rows, err := repository.pool.Query(context, query, userID, discussionIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres_discussion_repo_liked_by_failed: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres_discussion_repo_liked_by_scan_failed: %w", err)
	}

	liked := make(map[string]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

type execer interface {
	Exec(context context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertComment(context context.Context, db execer, comment Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.ForumComment.Table, commentColumns)
	_, err := db.Exec(context, query,
		comment.ID, comment.DiscussionID, comment.Content, comment.Author, comment.AuthorID, comment.CreatedAt)
	return err
}

// scanDiscussion maps one forum.discussion row without comments.
func scanDiscussion(row pgx.CollectableRow) (*Discussion, error) {
	discussion := &Discussion{Comments: []Comment{}}
	err := row.Scan(
		&discussion.ID, &discussion.BookID, &discussion.ChapterID, &discussion.Title, &discussion.Content,
		&discussion.AuthorID, &discussion.Author, &discussion.Likes, &discussion.CreatedAt,
	)
	return discussion, err
}
