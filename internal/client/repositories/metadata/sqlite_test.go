package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      TEXT    NOT NULL,
  updated_at INTEGER NOT NULL DEFAULT 0
);`)
	require.NoError(t, err)
	return db
}

func newRepo(db *sql.DB, at time.Time) *SQLiteRepository {
	r := NewSQLiteRepository(db)
	r.now = func() time.Time { return at }
	return r
}

func TestSetAndGet(t *testing.T) {
	r := newRepo(setupDB(t), time.Unix(1700000000, 0))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "access_token", "A1"))

	v, ok, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A1", v)
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.Get(context.Background(), "refresh_token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSet_Upserts(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, newRepo(db, time.Unix(100, 0)).Set(ctx, "access_token", "A1"))
	require.NoError(t, newRepo(db, time.Unix(200, 0)).Set(ctx, "access_token", "A2"))

	entries, err := NewSQLiteRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A2", entries[0].Value)
	assert.Equal(t, time.Unix(200, 0), entries[0].UpdatedAt)
}

func TestList_SortedByKey(t *testing.T) {
	r := newRepo(setupDB(t), time.Unix(1, 0))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "refresh_token", "R1"))
	require.NoError(t, r.Set(ctx, "access_token", "A1"))

	entries, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "access_token", entries[0].Key)
	assert.Equal(t, "refresh_token", entries[1].Key)
}

func TestDelete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v"))
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.Delete(ctx, "k"))

	_, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "1"))
	require.NoError(t, r.Set(ctx, "b", "2"))
	require.NoError(t, r.Clear(ctx))

	entries, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLiteRepository(db)
	ctx := context.Background()
	broken := errors.New("database is locked")

	mock.ExpectQuery(`SELECT value FROM metadata`).WithArgs("k").WillReturnError(broken)
	_, _, err = r.Get(ctx, "k")
	require.ErrorIs(t, err, broken)
	require.ErrorContains(t, err, "failed to get metadata[k]")

	mock.ExpectExec(`INSERT INTO metadata`).WillReturnError(broken)
	require.ErrorContains(t, r.Set(ctx, "k", "v"), "failed to set metadata[k]")

	mock.ExpectExec(`DELETE FROM metadata WHERE key`).WithArgs("k").WillReturnError(broken)
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")

	mock.ExpectExec(`DELETE FROM metadata`).WillReturnError(broken)
	require.ErrorContains(t, r.Clear(ctx), "failed to clear metadata")

	mock.ExpectQuery(`SELECT key, value, updated_at`).WillReturnError(broken)
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list metadata")

	require.NoError(t, mock.ExpectationsWereMet())
}
