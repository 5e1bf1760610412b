package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesKVStore(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv_store'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_store", name)

	rows, err := db.Query(`PRAGMA table_info(kv_store)`)
	require.NoError(t, err)
	defer rows.Close()
	var cols []string
	for rows.Next() {
		var (
			cid      int
			col, typ string
			notNull  int
			dflt     sql.NullString
			primary  int
		)
		require.NoError(t, rows.Scan(&cid, &col, &typ, &notNull, &dflt, &primary))
		cols = append(cols, col)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"key", "value", "updated_at"}, cols)
}

func TestMigrate_UpgradesLegacyTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE kv_store (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO kv_store (key, value) VALUES ('grindfit_program_v1', '{}')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var value, updated string
	err = db.QueryRow(`SELECT value, updated_at FROM kv_store WHERE key = 'grindfit_program_v1'`).Scan(&value, &updated)
	require.NoError(t, err)
	assert.Equal(t, "{}", value)
	assert.Equal(t, "", updated)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "grindfit.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()
	assert.FileExists(t, path)
}

func TestRemoteDSN(t *testing.T) {
	dsn, err := remoteDSN("libsql://fit-demo.turso.io", "tok")
	require.NoError(t, err)
	assert.Equal(t, "libsql://fit-demo.turso.io?authToken=tok", dsn)

	dsn, err = remoteDSN("http://127.0.0.1:8080", "")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", dsn)

	_, err = remoteDSN("file:local.db", "")
	assert.Error(t, err)
}
