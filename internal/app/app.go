// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app is the composition root shared by the API server and the bookctl
CLI. It picks the storage backends, builds every service, and optionally loads
the fixtures.

Backend selection:

  - Backends.Pool nil: catalogue, board and users live in process memory.
  - Backends.Redis nil: sessions live in process memory.
*/
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bookhub/internal/api"
	"github.com/taibuivan/bookhub/internal/core/catalog"
	"github.com/taibuivan/bookhub/internal/core/discussion"
	"github.com/taibuivan/bookhub/internal/fixtures"
	"github.com/taibuivan/bookhub/internal/platform/config"
	"github.com/taibuivan/bookhub/internal/platform/constants"
	pgstore "github.com/taibuivan/bookhub/internal/platform/postgres"
	redisstore "github.com/taibuivan/bookhub/internal/platform/redis"
	"github.com/taibuivan/bookhub/internal/platform/sec"
	"github.com/taibuivan/bookhub/internal/users/account"
	"github.com/taibuivan/bookhub/internal/users/auth"
)

// Backends carries the optional external connections.
type Backends struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

// App holds the wired services.
type App struct {
	Auth       *auth.Service
	Catalog    *catalog.Service
	Discussion *discussion.Service
	Account    *account.Service

	backends Backends
	logger   *slog.Logger
}

/*
New wires repositories and services for cfg.

Parameters:
  - context: context.Context (Used for fixture seeding)
  - cfg: *config.Config
  - backends: Backends (Either connection may be nil)
  - logger: *slog.Logger

Returns:
  - *App: Ready-to-use services
  - error: Token, scheme or seeding failures
*/
func New(context context.Context, cfg *config.Config, backends Backends, logger *slog.Logger) (*App, error) {
	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	if err != nil {
		return nil, fmt.Errorf("app_token_service_failed: %w", err)
	}

	scheme, err := sec.SchemeByName(cfg.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("app_credential_scheme_failed: %w", err)
	}

	var (
		users    auth.UserRepository
		sessions auth.SessionRepository
		books    catalog.Repository
		board    discussion.Repository
	)

	if backends.Pool != nil {
		users = auth.NewPostgresUserRepository(backends.Pool)
		books = catalog.NewPostgresRepository(backends.Pool)
		board = discussion.NewPostgresRepository(backends.Pool)
	} else {
		users = auth.NewMemoryUserRepository()
		books = catalog.NewMemoryRepository()
		board = discussion.NewMemoryRepository()
	}

	if backends.Redis != nil {
		sessions = auth.NewRedisSessionRepository(backends.Redis)
	} else {
		sessions = auth.NewMemorySessionRepository()
	}

	logger.Info("storage_selected",
		slog.Bool("postgres", backends.Pool != nil),
		slog.Bool("redis", backends.Redis != nil),
		slog.String("password_scheme", cfg.PasswordScheme),
	)

	if cfg.PasswordScheme == config.PasswordSchemePlain && cfg.IsProduction() {
		logger.Warn("plain_password_scheme_in_production")
	}

	catalogService := catalog.NewService(books, logger)
	discussionService := discussion.NewService(board, catalogService, logger)
	authService := auth.NewService(auth.Options{
		Users:      users,
		Sessions:   sessions,
		Tokens:     tokens,
		Scheme:     scheme,
		Books:      catalogService,
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	})

	if cfg.SeedFixtures {
		err := fixtures.Seed(context, fixtures.Targets{
			Users:  users,
			Scheme: scheme,
			Books:  books,
			Board:  board,
		}, logger)
		if err != nil {
			return nil, err
		}
	}

	return &App{
		Auth:       authService,
		Catalog:    catalogService,
		Discussion: discussionService,
		Account:    account.NewService(authService, catalogService, discussionService, logger),
		backends:   backends,
		logger:     logger,
	}, nil
}

// Handlers builds the HTTP handler registry, including dependency probes.
func (app *App) Handlers() api.Handlers {
	var deps api.HealthDependencies
	if pool := app.backends.Pool; pool != nil {
		deps.CheckDatabase = func(context context.Context) error { return pgstore.Ping(context, pool) }
	}
	if client := app.backends.Redis; client != nil {
		deps.CheckCache = func(context context.Context) error { return redisstore.Ping(context, client) }
	}

	liveness, readiness := api.NewHealthHandlers(deps, app.logger)

	return api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(app.Auth),
		Catalog:    catalog.NewHandler(app.Catalog),
		Discussion: discussion.NewHandler(app.Discussion),
		Account:    account.NewHandler(app.Account),
	}
}
