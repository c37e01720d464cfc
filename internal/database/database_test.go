package database_test

import (
	"context"
	"testing"

	"taskboard/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SQLiteMigrates(t *testing.T) {
	db, err := database.New(database.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db))

	for _, table := range []string{"users", "boards", "lists", "cards", "comments", "board_labels"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := database.New(database.Config{Driver: "mssql", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
