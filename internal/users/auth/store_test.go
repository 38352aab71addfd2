// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/users/auth"
)

func TestMemoryUserRepository_Conflicts(t *testing.T) {
	ctx := context.Background()
	users := auth.NewMemoryUserRepository()

	require.NoError(t, users.Create(ctx, &auth.User{ID: "1", Email: "a@test.com"}))

	err := users.Create(ctx, &auth.User{ID: "2", Email: "a@test.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	err = users.Create(ctx, &auth.User{ID: "1", Email: "b@test.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

/*
TestRedisSessionRepository runs the Redis store against an in-process
miniredis server, including key expiry.
*/
func TestRedisSessionRepository(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := auth.NewRedisSessionRepository(client)
	session := &auth.Session{ID: "s1", UserID: "1", UserName: "Kim Cheolsu", CreatedAt: time.Now()}

	require.NoError(t, sessions.Create(ctx, session, time.Minute))
	assert.True(t, server.Exists("auth:session:s1"))

	found, err := sessions.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "1", found.UserID)
	assert.Equal(t, "Kim Cheolsu", found.UserName)

	server.FastForward(2 * time.Minute)
	_, err = sessions.Find(ctx, "s1")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	require.NoError(t, sessions.Create(ctx, session, time.Minute))
	require.NoError(t, sessions.Delete(ctx, "s1"))
	require.NoError(t, sessions.Delete(ctx, "s1"))

	_, err = sessions.Find(ctx, "s1")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestMemorySessionRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	sessions := auth.NewMemorySessionRepository()

	require.NoError(t, sessions.Create(ctx, &auth.Session{ID: "s1", UserID: "1"}, -time.Second))

	_, err := sessions.Find(ctx, "s1")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
