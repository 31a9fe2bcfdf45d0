package credentials

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/forumkeeper/internal/common"
)

// Options selects and configures a backend for Open.
type Options struct {
	Kind       Kind
	SQLitePath string
	Redis      RedisOptions
}

// Open builds the configured Store. The returned close function releases
// the backend and is never nil.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	switch opts.Kind {
	case KindMemory:
		return NewMemoryStore(), func() error { return nil }, nil
	case KindSQLite:
		s, err := OpenSQLiteStore(ctx, opts.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case KindRedis:
		s, err := NewRedisStore(ctx, opts.Redis)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", common.ErrUnknownStore, opts.Kind)
	}
}
