package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(Memory)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	for _, table := range []string{"users", "results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestMigrateOrderAndSelfManaged(t *testing.T) {
	db, err := Open(Memory)
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/002_b.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('second');`)},
		"m/001_a.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"m/003_c.sql": {Data: []byte("BEGIN TRANSACTION;\nINSERT INTO t(v) VALUES ('third');\nCOMMIT;")},
		"m/readme.md": {Data: []byte(`ignored`)},
	}
	require.NoError(t, migrateFS(db, fsys, "m"))

	rows, err := db.Query(`SELECT v FROM t ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()
	var got []string
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		got = append(got, v)
	}
	assert.Equal(t, []string{"second", "third"}, got)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pairs.db")
	db, err := OpenMigrated(path)
	require.NoError(t, err)
	assert.NoError(t, db.Ping())
	assert.NoError(t, db.Close())
}
