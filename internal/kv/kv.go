// Package kv provides the get/set-with-expiry storage used for room
// documents. A single backend is selected at process start; callers only
// ever see the Store interface.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable reports that the backend could not be reached or is not
// configured. It is never used for a missing key.
var ErrUnavailable = errors.New("store unavailable")

// Store is a key/value store with per-key expiry. Implementations must be
// safe for concurrent use. A ttl <= 0 stores the value without expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}
