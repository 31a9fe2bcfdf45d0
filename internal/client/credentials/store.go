// Package credentials keeps the access and refresh tokens between runs.
//
// The request pipeline reads the access token before every call and the
// auth flows write or clear both tokens. A Store is injected into the
// client instead of being reached through globals, which keeps the
// pipeline testable with MemoryStore.
package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/forumkeeper/internal/client/models"
	"github.com/dmitrijs2005/forumkeeper/internal/common"
)

// Store is a string key/value store for credentials. Get returns "" and
// a nil error for an absent key; Clear of an absent key is not an error.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}

// PairSaver is implemented by stores that can write both tokens atomically.
type PairSaver interface {
	SavePair(ctx context.Context, pair models.TokenPair) error
}

// SavePair persists both tokens of pair.
func SavePair(ctx context.Context, s Store, pair models.TokenPair) error {
	if ps, ok := s.(PairSaver); ok {
		return ps.SavePair(ctx, pair)
	}
	if err := s.Set(ctx, common.AccessTokenKey, pair.AccessToken); err != nil {
		return err
	}
	return s.Set(ctx, common.RefreshTokenKey, pair.RefreshToken)
}

// LoadPair reads both tokens. Missing tokens come back empty.
func LoadPair(ctx context.Context, s Store) (models.TokenPair, error) {
	access, err := s.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := s.Get(ctx, common.RefreshTokenKey)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ClearAll drops both tokens, attempting each even if the first fails.
func ClearAll(ctx context.Context, s Store) error {
	return errors.Join(
		s.Clear(ctx, common.AccessTokenKey),
		s.Clear(ctx, common.RefreshTokenKey),
	)
}

// Kind names a Store backend in configuration.
type Kind string

const (
	KindMemory Kind = "memory"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
)

// ParseKind validates a configured backend name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindMemory, KindSQLite, KindRedis:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownStore, s)
	}
}
