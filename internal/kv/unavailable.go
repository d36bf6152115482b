package kv

import (
	"context"
	"fmt"
	"time"
)

// Unavailable fails every call with ErrUnavailable. It stands in for a
// durable backend that is missing when an in-memory fallback must not be
// trusted.
type Unavailable struct {
	Reason string
}

func (u Unavailable) err() error {
	if u.Reason == "" {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

func (u Unavailable) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, u.err()
}

func (u Unavailable) Set(context.Context, string, []byte, time.Duration) error {
	return u.err()
}

func (u Unavailable) Ping(context.Context) error { return u.err() }
