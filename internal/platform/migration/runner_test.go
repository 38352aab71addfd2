// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookhub/internal/platform/database/migrations"
	"github.com/taibuivan/bookhub/internal/platform/migration"
)

func TestToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/bookhub":   "pgx5://u:p@localhost:5432/bookhub",
		"postgresql://u:p@localhost:5432/bookhub": "pgx5://u:p@localhost:5432/bookhub",
		"pgx5://u:p@localhost:5432/bookhub":       "pgx5://u:p@localhost:5432/bookhub",
	}

	for input, want := range tests {
		assert.Equal(t, want, migration.ToPgx5DSN(input))
	}
}

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations.FS, "*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
