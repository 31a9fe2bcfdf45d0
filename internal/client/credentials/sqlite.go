package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/forumkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
	"github.com/dmitrijs2005/forumkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/forumkeeper/internal/common"
	"github.com/dmitrijs2005/forumkeeper/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists credentials in the metadata table of a local SQLite
// file, so a session survives restarts of the CLI.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

// OpenSQLiteStore opens (creating if needed) the database at dsn and applies
// the embedded migrations.
func OpenSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open credential database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate credential database: %w", err)
	}
	return NewSQLiteStore(db), nil
}

// RunMigrations brings db up to the latest embedded schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	v, _, err := s.repo.Get(ctx, key)
	return v, err
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *SQLiteStore) Clear(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// SavePair writes both tokens in one transaction.
func (s *SQLiteStore) SavePair(ctx context.Context, pair models.TokenPair) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, pair.AccessToken); err != nil {
			return err
		}
		return repo.Set(ctx, common.RefreshTokenKey, pair.RefreshToken)
	})
}

// Metadata exposes the underlying key/value repository.
func (s *SQLiteStore) Metadata() metadata.Repository {
	return s.repo
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
