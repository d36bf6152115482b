package room

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/playperu/cookparty/internal/kv"
)

var epoch = time.UnixMilli(1_700_000_000_000)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{t: epoch} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// seqIDs returns a generator producing id-1, id-2, ...
func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func fixedCode(code string) func() (string, error) {
	return func() (string, error) { return code, nil }
}

const testTTL = time.Hour

type fixture struct {
	clock *fakeClock
	store *kv.Memory
	repo  *Repository
	svc   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := newFakeClock()
	store := kv.NewMemoryWithClock(clock.Now)
	repo := NewRepository(store, testTTL, WithClock(clock.Now), WithCodeGenerator(fixedCode("ABCD")))
	svc := NewService(repo,
		WithServiceClock(clock.Now),
		WithIDGenerator(seqIDs("id")),
	)
	return &fixture{clock: clock, store: store, repo: repo, svc: svc}
}

// lobbyRoom builds an in-memory room for mutator tests.
func lobbyRoom(players int) Room {
	r := Room{
		ID:          "ABCD",
		Phase:       PhaseLobby,
		Players:     []Player{},
		Ingredients: []Ingredient{},
		Version:     1,
	}
	for i := 0; i < players; i++ {
		r.Players = append(r.Players, Player{ID: fmt.Sprintf("p%d", i), Nickname: fmt.Sprintf("player%d", i)})
	}
	return r
}
