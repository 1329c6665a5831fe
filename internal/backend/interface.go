package backend

import (
	"context"

	"fintrack/internal/storage"
)

// CleanupFunc releases the resources behind a store.
type CleanupFunc func() error

// PingFunc reports whether the store is reachable.
type PingFunc func(ctx context.Context) error

// Result is an opened store with its health check and cleanup.
type Result struct {
	Store   storage.Store
	Ping    PingFunc
	Cleanup CleanupFunc
}

// Close runs the cleanup function, if any.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory opens stores based on configuration.
type Factory interface {
	Open(ctx context.Context, config Config) (*Result, error)
}

// Config holds what is needed to open a store.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Postgres specific
	DatabaseURL string

	// Memory backend specific: <DataDirectory>/<StorageKey>.json seeds the store.
	DataDirectory string
	StorageKey    string
}

// Type names a store implementation.
type Type string

const (
	SQLiteBackend   Type = "sqlite"
	PostgresBackend Type = "postgres"
	MemoryBackend   Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, PostgresBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
