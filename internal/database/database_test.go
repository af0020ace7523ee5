package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locallibrary/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestNewDatabase_MigratesSchema(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range []string{"users", "authors", "genres", "books", "book_instances", "audit_events"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "table %s should exist", table)
	}
}

func TestNewDatabase_SeedsDefaultGenres(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	var count int64
	require.NoError(t, db.DB.Model(&entities.Genre{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultGenres)), count)

	var fiction entities.Genre
	require.NoError(t, db.DB.Where("name = ?", "Fiction").First(&fiction).Error)
}

func TestNewDatabase_SeedingIsIdempotent(t *testing.T) {
	dbPath := "./test_reopen_" + t.Name() + ".db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not duplicate the seeded genres
	db, err = NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.DB.Model(&entities.Genre{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultGenres)), count)
}

func TestNewDatabase_EnforcesForeignKeys(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	var enabled int
	require.NoError(t, db.DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestDatabase_Close(t *testing.T) {
	dbPath := "./test_close_" + t.Name() + ".db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	assert.NoError(t, db.Close())
}
