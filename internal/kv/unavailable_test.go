package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnavailableFailsEveryCall(t *testing.T) {
	ctx := context.Background()
	s := Unavailable{Reason: "no store configured"}

	_, found, err := s.Get(ctx, "room:ABCD")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, found)

	assert.ErrorIs(t, s.Set(ctx, "room:ABCD", []byte("v"), time.Minute), ErrUnavailable)
	assert.ErrorIs(t, s.Ping(ctx), ErrUnavailable)
	assert.Contains(t, s.Ping(ctx).Error(), "no store configured")
}

func TestUnavailableWithoutReason(t *testing.T) {
	err := Unavailable{}.Ping(context.Background())
	assert.Equal(t, ErrUnavailable, err)
}
