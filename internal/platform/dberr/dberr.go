// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
)

// SQLSTATE codes classified by [Wrap].
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Wrap inspects a database error and classifies it as an [apperr.AppError].
//
//   - pgx.ErrNoRows becomes NOT_FOUND for resource.
//   - a unique violation becomes CONFLICT.
//   - a foreign key violation becomes NOT_FOUND for the referenced row.
//   - anything else is wrapped with action and surfaces as INTERNAL_ERROR.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case codeForeignKeyViolation:
			return apperr.NotFound("Referenced resource")
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
