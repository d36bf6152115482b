package room

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/playperu/cookparty/internal/kv"
)

var (
	// ErrNotFound means the room never existed or has expired.
	ErrNotFound = errors.New("room not found")
	// ErrDeclined means the action is not legal in the room's current
	// state, e.g. joining a full or started room.
	ErrDeclined = errors.New("action declined")
)

// ErrUnavailable is re-exported for callers that only import room.
var ErrUnavailable = kv.ErrUnavailable

// Service exposes the room lifecycle operations on top of a Repository
// and maps update outcomes onto ErrNotFound and ErrDeclined. Store
// failures are returned wrapping kv.ErrUnavailable.
type Service struct {
	repo             *Repository
	now              func() time.Time
	newID            func() string
	ingredientMaxLen int
}

type ServiceOption func(*Service)

func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *Service) { s.newID = newID }
}

// WithIngredientMaxLen sets the ingredient text cap in runes.
func WithIngredientMaxLen(n int) ServiceOption {
	return func(s *Service) { s.ingredientMaxLen = n }
}

func NewService(repo *Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:             repo,
		now:              time.Now,
		newID:            NewID,
		ingredientMaxLen: DefaultIngredientMaxLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) IngredientMaxLen() int { return s.ingredientMaxLen }

func (s *Service) Create(ctx context.Context) (string, error) {
	return s.repo.Create(ctx)
}

// Get returns the room or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (Room, error) {
	room, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return Room{}, err
	}
	if !found {
		return Room{}, ErrNotFound
	}
	return room, nil
}

// Join adds a player and returns it together with the updated room.
// Nicknames longer than MaxNicknameLen runes are truncated.
func (s *Service) Join(ctx context.Context, id, nickname string) (Player, Room, error) {
	room, err := s.apply(ctx, id, JoinMutator(truncate(nickname, MaxNicknameLen), s.newID), true)
	if err != nil {
		return Player{}, room, err
	}
	return room.Players[len(room.Players)-1], room, nil
}

// Start moves the room into COUNTDOWN. Starting a room that is already
// past LOBBY is not an error.
func (s *Service) Start(ctx context.Context, id string) (Room, error) {
	return s.apply(ctx, id, StartMutator(s.now()), false)
}

// SubmitIngredient adds an ingredient or returns ErrDeclined when the
// phase, the ingredient cap or the text length forbids it.
func (s *Service) SubmitIngredient(ctx context.Context, id, playerID, text string) (Room, error) {
	return s.apply(ctx, id, SubmitMutator(playerID, text, s.ingredientMaxLen, s.newID), true)
}

// BeginCooking moves the room into COOKING. The returned bool reports
// whether this call made the transition.
func (s *Service) BeginCooking(ctx context.Context, id string) (Room, bool, error) {
	room, status, err := s.repo.Update(ctx, id, BeginCookingMutator())
	if err != nil {
		return Room{}, false, err
	}
	if status == UpdateMissing {
		return Room{}, false, ErrNotFound
	}
	return room, status == UpdateApplied, nil
}

// SetResult finishes the room with dish.
func (s *Service) SetResult(ctx context.Context, id string, dish Dish) (Room, error) {
	return s.apply(ctx, id, SetResultMutator(dish), false)
}

// State is the change-notification read.
func (s *Service) State(ctx context.Context, id string, sinceVersion int64) (Poll, error) {
	return s.repo.GetWithVersion(ctx, id, sinceVersion)
}

// apply runs fn and maps a missing room to ErrNotFound. When strict is
// set an unchanged outcome is ErrDeclined; the unchanged room is still
// returned.
func (s *Service) apply(ctx context.Context, id string, fn Mutator, strict bool) (Room, error) {
	room, status, err := s.repo.Update(ctx, id, fn)
	if err != nil {
		return Room{}, err
	}
	switch status {
	case UpdateMissing:
		return Room{}, ErrNotFound
	case UpdateUnchanged:
		if strict {
			return room, ErrDeclined
		}
	}
	return room, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
