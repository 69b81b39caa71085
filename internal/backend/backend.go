// Package backend selects and constructs the kv store configured for the
// process: in-memory for local runs, bolt or sqlite for durable state.
package backend

import (
	"fmt"
	"log/slog"

	"cobro/internal/config"
	"cobro/internal/kv"
	"cobro/internal/kv/bolt"
	"cobro/internal/kv/memory"
	"cobro/internal/kv/sqlite"
)

type Type string

const (
	Memory Type = "memory"
	Bolt   Type = "bolt"
	SQLite Type = "sqlite"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case Memory, Bolt, SQLite:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types, for config error messages.
func Types() []Type {
	return []Type{Memory, Bolt, SQLite}
}

// CleanupFunc releases backend resources. May be nil.
type CleanupFunc func() error

// Result bundles the opened store with its cleanup function.
type Result struct {
	Store   kv.Store
	Cleanup CleanupFunc
}

// Open constructs the store named by cfg.DataBackend.
func Open(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch Type(cfg.DataBackend) {
	case Memory:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	case Bolt:
		store, err := bolt.Open(cfg.BoltDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize bolt backend: %w", err)
		}
		logger.Info("Initialized bolt backend", "path", cfg.BoltDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case SQLite:
		store, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}
