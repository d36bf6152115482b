package room

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/playperu/cookparty/internal/kv"
)

// Outcome is what a Mutator decided. The zero value is Unchanged.
type Outcome struct {
	room    Room
	applied bool
}

// Unchanged reports that the attempted change is not legal for the room's
// current state.
func Unchanged() Outcome { return Outcome{} }

// Applied carries the new room state.
func Applied(r Room) Outcome { return Outcome{room: r, applied: true} }

// IsApplied reports whether the outcome carries a new state.
func (o Outcome) IsApplied() bool { return o.applied }

// Room returns the new state of an applied outcome.
func (o Outcome) Room() Room { return o.room }

// Mutator computes the next room state from a private copy of the current
// one. It must not perform I/O.
type Mutator func(Room) Outcome

type UpdateStatus int

const (
	UpdateMissing UpdateStatus = iota
	UpdateUnchanged
	UpdateApplied
)

func (s UpdateStatus) String() string {
	switch s {
	case UpdateMissing:
		return "missing"
	case UpdateUnchanged:
		return "unchanged"
	case UpdateApplied:
		return "applied"
	}
	return fmt.Sprintf("UpdateStatus(%d)", int(s))
}

// Repository persists rooms as JSON documents in a kv.Store. Every write
// refreshes the room TTL.
type Repository struct {
	store   kv.Store
	ttl     time.Duration
	now     func() time.Time
	newCode func() (string, error)
}

type RepositoryOption func(*Repository)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) { r.now = now }
}

// WithCodeGenerator overrides GenerateCode.
func WithCodeGenerator(gen func() (string, error)) RepositoryOption {
	return func(r *Repository) { r.newCode = gen }
}

func NewRepository(store kv.Store, ttl time.Duration, opts ...RepositoryOption) *Repository {
	r := &Repository{
		store:   store,
		ttl:     ttl,
		now:     time.Now,
		newCode: GenerateCode,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create stores a new empty LOBBY room at version 1 and returns its id.
func (r *Repository) Create(ctx context.Context) (string, error) {
	id, err := r.newCode()
	if err != nil {
		return "", err
	}

	now := r.now().UnixMilli()
	room := Room{
		ID:          id,
		Phase:       PhaseLobby,
		Players:     []Player{},
		Ingredients: []Ingredient{},
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
	if err := r.save(ctx, room); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the room with the given id. Missing and expired rooms are
// reported with found == false and a nil error.
func (r *Repository) Get(ctx context.Context, id string) (Room, bool, error) {
	data, found, err := r.store.Get(ctx, key(id))
	if err != nil {
		return Room{}, false, fmt.Errorf("loading room %s: %w", id, err)
	}
	if !found {
		return Room{}, false, nil
	}

	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return Room{}, false, fmt.Errorf("decoding room %s: %w", id, err)
	}
	if room.Players == nil {
		room.Players = []Player{}
	}
	if room.Ingredients == nil {
		room.Ingredients = []Ingredient{}
	}
	return room, true, nil
}

// Update runs fn against the current room and persists the result.
//
// An applied outcome is stored with Version incremented by one and
// UpdatedAt set to now. An unchanged outcome re-stores the original
// document only to refresh its TTL.
//
// This is a plain read-modify-write: two concurrent updates of the same
// room can both read version N and the later write wins, discarding the
// other's change.
func (r *Repository) Update(ctx context.Context, id string, fn Mutator) (Room, UpdateStatus, error) {
	current, found, err := r.Get(ctx, id)
	if err != nil {
		return Room{}, UpdateMissing, err
	}
	if !found {
		return Room{}, UpdateMissing, nil
	}

	out := fn(current.Clone())
	if !out.IsApplied() {
		if err := r.save(ctx, current); err != nil {
			return Room{}, UpdateUnchanged, err
		}
		return current, UpdateUnchanged, nil
	}

	next := out.Room()
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.Version = current.Version + 1
	next.UpdatedAt = r.now().UnixMilli()
	if err := r.save(ctx, next); err != nil {
		return Room{}, UpdateApplied, err
	}
	return next, UpdateApplied, nil
}

func (r *Repository) save(ctx context.Context, room Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("encoding room %s: %w", room.ID, err)
	}
	if err := r.store.Set(ctx, key(room.ID), data, r.ttl); err != nil {
		return fmt.Errorf("saving room %s: %w", room.ID, err)
	}
	return nil
}
