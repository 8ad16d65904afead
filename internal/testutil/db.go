// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"testing"

	"inventory/internal/infra/persistence/postgres"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory SQLite database with foreign keys enforced,
// the full schema migrated and the role set seeded.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, db), "Failed to migrate test database")
	require.NoError(t, postgres.SeedRoles(ctx, db), "Failed to seed roles")

	return db
}
