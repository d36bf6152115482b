package kv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/playperu/cookparty/internal/database"
	"github.com/playperu/cookparty/internal/migrations"
)

// Mode names a storage backend.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeRedis  Mode = "redis"
	ModeSQLite Mode = "sqlite"
	ModeMemory Mode = "memory"
	ModeNone   Mode = "none"
)

// Options selects and configures the backend for Open.
type Options struct {
	Mode             Mode
	RedisURL         string
	DBPath           string
	AllowMemoryStore bool
}

// Resolve maps ModeAuto to a concrete mode: Redis when a URL is
// configured, otherwise memory if permitted, otherwise none.
func (o Options) Resolve() Mode {
	if o.Mode != ModeAuto && o.Mode != "" {
		return o.Mode
	}
	switch {
	case o.RedisURL != "":
		return ModeRedis
	case o.AllowMemoryStore:
		return ModeMemory
	default:
		return ModeNone
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the Store selected by opts. Configuration problems with a
// durable backend do not fail startup; they yield an Unavailable store so
// that every request reports the outage. Only an unknown mode is an error.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Store, io.Closer, Mode, error) {
	mode := opts.Resolve()

	switch mode {
	case ModeMemory:
		logger.Warn("using in-memory room store; state is not shared across instances")
		return NewMemory(), nopCloser{}, mode, nil

	case ModeNone:
		logger.Error("no room store configured")
		return Unavailable{Reason: "no store configured"}, nopCloser{}, mode, nil

	case ModeRedis:
		if opts.RedisURL == "" {
			logger.Error("redis store selected without REDIS_URL")
			return Unavailable{Reason: "REDIS_URL is not set"}, nopCloser{}, mode, nil
		}
		store, err := OpenRedis(opts.RedisURL)
		if err != nil {
			logger.Error("invalid redis url", "error", err)
			return Unavailable{Reason: err.Error()}, nopCloser{}, mode, nil
		}

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			logger.Warn("redis not reachable at startup", "error", err)
		} else {
			logger.Info("connected to redis")
		}
		return store, store, mode, nil

	case ModeSQLite:
		store, err := openSQLite(ctx, opts.DBPath)
		if err != nil {
			logger.Error("sqlite store unavailable", "path", opts.DBPath, "error", err)
			return Unavailable{Reason: err.Error()}, nopCloser{}, mode, nil
		}
		logger.Info("connected to sqlite", "path", opts.DBPath)
		return store, store, mode, nil
	}

	return nil, nil, mode, fmt.Errorf("unknown store mode %q", mode)
}

func openSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}
	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLite(db), nil
}
