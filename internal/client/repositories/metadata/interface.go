// Package metadata is the key/value table of the local client database.
// The credential store keeps the token pair here, and the CLI uses it for
// small bits of session state such as the last username.
package metadata

import (
	"context"
	"time"
)

// Entry is one stored row.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type Repository interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
}
