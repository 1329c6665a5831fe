// Package storage provides the key-value stores the finance repository
// persists its state blob into.
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the key the whole finance state is stored under.
const DefaultKey = "finance-tracker-data"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Store is a string-keyed blob store. Get reports found=false, with no
// error, for a key that was never set or has been removed.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
