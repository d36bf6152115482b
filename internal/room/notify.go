package room

import (
	"context"
	"fmt"
)

type PollStatus int

const (
	PollMissing PollStatus = iota
	PollUnchanged
	PollFull
)

func (s PollStatus) String() string {
	switch s {
	case PollMissing:
		return "missing"
	case PollUnchanged:
		return "unchanged"
	case PollFull:
		return "full"
	}
	return fmt.Sprintf("PollStatus(%d)", int(s))
}

// Poll is the answer to a "since version" read. Room is set only for
// PollFull.
type Poll struct {
	Status PollStatus
	Room   Room
}

// GetWithVersion lets a polling client skip unchanged state. A since value
// <= 0 means the client has no version yet and always gets the full room.
func (r *Repository) GetWithVersion(ctx context.Context, id string, since int64) (Poll, error) {
	room, found, err := r.Get(ctx, id)
	if err != nil {
		return Poll{}, err
	}
	if !found {
		return Poll{Status: PollMissing}, nil
	}
	if since > 0 && room.Version <= since {
		return Poll{Status: PollUnchanged}, nil
	}
	return Poll{Status: PollFull, Room: room}, nil
}
