// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookhub/internal/core/catalog"
	"github.com/taibuivan/bookhub/internal/core/discussion"
	"github.com/taibuivan/bookhub/internal/fixtures"
	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/sec"
	"github.com/taibuivan/bookhub/internal/users/auth"
)

func newAuth(t *testing.T) *auth.Service {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := auth.NewMemoryUserRepository()
	books := catalog.NewMemoryRepository()
	scheme := sec.PlainScheme{}

	require.NoError(t, fixtures.Seed(ctx, fixtures.Targets{
		Users:  users,
		Scheme: scheme,
		Books:  books,
		Board:  discussion.NewMemoryRepository(),
	}, logger))

	tokens, err := sec.NewTokenService("0123456789abcdef", "bookhub.test")
	require.NoError(t, err)

	return auth.NewService(auth.Options{
		Users:      users,
		Sessions:   auth.NewMemorySessionRepository(),
		Tokens:     tokens,
		Scheme:     scheme,
		Books:      catalog.NewService(books, logger),
		SessionTTL: time.Hour,
		Logger:     logger,
	})
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"seeded_user", "test@test.com", "test123", nil},
		{"second_seeded_user", "user@test.com", "user123", nil},
		{"wrong_password", "test@test.com", "nope", auth.ErrInvalidCredentials},
		{"unknown_email", "ghost@test.com", "test123", auth.ErrInvalidCredentials},
		{"email_is_case_sensitive", "TEST@test.com", "test123", auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newAuth(t)

			result, err := service.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, result.Token)
			assert.Equal(t, tt.email, result.User.Email)
		})
	}
}

func TestCurrent_IsPasswordFreeProfile(t *testing.T) {
	service := newAuth(t)
	ctx := context.Background()

	result, err := service.Login(ctx, "test@test.com", "test123")
	require.NoError(t, err)

	current, err := service.Current(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, &auth.Profile{
		ID:             "1",
		Name:           "Kim Cheolsu",
		Email:          "test@test.com",
		PurchasedBooks: []string{"2"},
	}, current)

	_, err = service.Current(ctx, "garbage")
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestRegister(t *testing.T) {
	service := newAuth(t)
	ctx := context.Background()

	before, err := service.DirectorySize(ctx)
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{Name: "Dup", Email: "test@test.com", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	size, err := service.DirectorySize(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, size, "failed registration leaves the directory unchanged")

	result, err := service.Register(ctx, auth.RegisterInput{Name: "Lee Gaebal", Email: "lee@test.com", Password: "secret"})
	require.NoError(t, err)
	assert.Empty(t, result.User.PurchasedBooks)

	size, err = service.DirectorySize(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, size)

	current, err := service.Current(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "lee@test.com", current.Email)

	_, err = service.Login(ctx, "lee@test.com", "secret")
	assert.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"no_name", auth.RegisterInput{Email: "a@test.com", Password: "x"}},
		{"bad_email", auth.RegisterInput{Name: "A", Email: "not-an-email", Password: "x"}},
		{"no_password", auth.RegisterInput{Name: "A", Email: "a@test.com"}},
		{"display_name_email", auth.RegisterInput{Name: "Bob", Email: "Bob <bob@x.com>", Password: "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAuth(t).Register(context.Background(), tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
		})
	}
}

/*
TestRegister_BareAddressLogsIn verifies that the stored email is the address
the user types at login, so one mailbox cannot be registered twice.
*/
func TestRegister_BareAddressLogsIn(t *testing.T) {
	service := newAuth(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Name: "Bob", Email: "Bob <bob@x.com>", Password: "pw"})
	require.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)

	_, err = service.Register(ctx, auth.RegisterInput{Name: "Bob", Email: "bob@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = service.Login(ctx, "bob@x.com", "pw")
	assert.NoError(t, err)
}

func TestLogout_RevokesSession(t *testing.T) {
	service := newAuth(t)
	ctx := context.Background()

	result, err := service.Login(ctx, "user@test.com", "user123")
	require.NoError(t, err)

	_, err = service.VerifyToken(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, result.Token))
	require.NoError(t, service.Logout(ctx, result.Token), "logout is idempotent")
	require.NoError(t, service.Logout(ctx, "garbage"))

	_, err = service.VerifyToken(ctx, result.Token)
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestPurchase(t *testing.T) {
	service := newAuth(t)
	ctx := context.Background()
	buyer := &sec.Actor{ID: "2", Name: "Kim Minsu"}

	_, err := service.Purchase(ctx, nil, "1")
	assert.True(t, apperr.HasCode(err, apperr.CodeLoginRequired))

	_, err = service.Purchase(ctx, buyer, "99")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	profile, err := service.Purchase(ctx, buyer, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, profile.PurchasedBooks)

	profile, err = service.Purchase(ctx, buyer, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, profile.PurchasedBooks, "a repeated purchase is a no-op")
}
