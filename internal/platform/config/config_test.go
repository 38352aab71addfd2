// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookhub/internal/platform/config"
)

/*
TestLoad_Defaults verifies that only SESSION_SECRET is mandatory and that the
in-memory backends are selected by default.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.PasswordSchemePlain, cfg.PasswordScheme)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SeedFixtures)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.UsesPostgres())
	assert.False(t, cfg.UsesRedis())
}

/*
TestLoad_Rejects covers invalid environments.
*/
func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		scheme string
	}{
		{"short_secret", "short", "plain"},
		{"unknown_scheme", "0123456789abcdef", "md5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", tt.secret)
			t.Setenv("PASSWORD_SCHEME", tt.scheme)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
