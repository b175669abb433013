package histstore

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/shiftline/schema"
)

func TestMigrationFilesPerDialect(t *testing.T) {
	// Every supported backend needs its own up/down pair; shipping one
	// dialect's DDL to another backend fails mid-migration and leaves the
	// schema_migrations state dirty.
	for _, dialect := range []string{"sqlite", "mysql", "postgres"} {
		up, err := fs.Glob(migrationsFS, "migrations/"+dialect+"/*.up.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, up, "missing up migrations for %s", dialect)

		down, err := fs.Glob(migrationsFS, "migrations/"+dialect+"/*.down.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, down, "missing down migrations for %s", dialect)
	}

	mysqlUp, err := fs.ReadFile(migrationsFS, "migrations/mysql/000001_create_downtime_events.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(mysqlUp), "AUTO_INCREMENT")
	assert.NotContains(t, string(mysqlUp), "AUTOINCREMENT")

	pgUp, err := fs.ReadFile(migrationsFS, "migrations/postgres/000001_create_downtime_events.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(pgUp), "BIGSERIAL")
}

func TestMigrationDialect(t *testing.T) {
	assert.Equal(t, "sqlite", migrationDialect(schema.SQLiteBackend))
	assert.Equal(t, "mysql", migrationDialect(schema.MySQLBackend))
	assert.Equal(t, "postgres", migrationDialect(schema.PostgreSQLBackend))
}

func TestMigrateHistorySQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	// Up to latest
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", eventsTable,
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, eventsTable, name)

	// Running again is a no-op, not an error
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	// All the way back down
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", eventsTable,
	).Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
