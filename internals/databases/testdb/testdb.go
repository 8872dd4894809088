// Package testdb opens a throwaway SQLite database with the full schema for package tests.
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "reporthub_backend/internals/databases"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reporthub.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(0)&_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection: sqlite serialises writers anyway and nested tx must reuse it
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}
