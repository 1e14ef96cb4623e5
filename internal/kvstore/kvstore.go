package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound reports a key with no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

// ErrCorrupt reports a backing document that cannot be decoded.
var ErrCorrupt = errors.New("kvstore: corrupt document")

// Store is a flat key-value blob store. Implementations serialize their own
// reads and writes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
