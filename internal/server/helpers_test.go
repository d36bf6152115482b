package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/playperu/cookparty/internal/handler/health"
	"github.com/playperu/cookparty/internal/kv"
	"github.com/playperu/cookparty/internal/room"
)

type stubCook struct {
	mu    sync.Mutex
	dish  room.Dish
	calls [][]string
}

func (s *stubCook) Cook(_ context.Context, ingredients []string) room.Dish {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, ingredients)
	return s.dish
}

func (s *stubCook) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type testServer struct {
	handler http.Handler
	rooms   *room.Service
	cook    *stubCook
}

type serverOption func(*Options)

func withStore(store kv.Store) serverOption {
	return func(o *Options) {
		o.Rooms = room.NewService(room.NewRepository(store, time.Hour))
		o.HealthChecks = map[string]health.Checker{"store": health.CheckerFunc(store.Ping)}
	}
}

func withDevCook() serverOption {
	return func(o *Options) { o.AllowDevCook = true }
}

func withRateLimit(rps float64, burst int) serverOption {
	return func(o *Options) {
		o.RateLimit = rate.Limit(rps)
		o.RateBurst = burst
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	store := kv.NewMemory()
	cook := &stubCook{dish: room.Dish{
		DishName:    "Stub Stew",
		Description: "Made in a test.",
		ImageURL:    "https://example.com/stew.png",
	}}
	o := Options{
		Rooms:        room.NewService(room.NewRepository(store, time.Hour)),
		Kitchen:      cook,
		StoreMode:    kv.ModeMemory,
		HealthChecks: map[string]health.Checker{"store": health.CheckerFunc(store.Ping)},
		CookTimeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testServer{
		handler: NewHandler(logger, o),
		rooms:   o.Rooms,
		cook:    cook,
	}
}

func (s *testServer) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) createRoom(t *testing.T) string {
	t.Helper()
	rec := s.post(t, "/api/rooms/create", struct{}{})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp CreateResponse
	decode(t, rec, &resp)
	return resp.RoomID
}

func (s *testServer) join(t *testing.T, roomID, nickname string) room.Player {
	t.Helper()
	rec := s.post(t, "/api/rooms/join", JoinRequest{RoomID: roomID, Nickname: nickname})
	if rec.Code != http.StatusOK {
		t.Fatalf("join %s: status = %d, body = %s", nickname, rec.Code, rec.Body.String())
	}
	var resp JoinResponse
	decode(t, rec, &resp)
	return resp.Player
}

func (s *testServer) state(t *testing.T, roomID string) room.Room {
	t.Helper()
	rec := s.get(t, "/api/rooms/state?roomId="+roomID)
	if rec.Code != http.StatusOK {
		t.Fatalf("state: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var rm room.Room
	decode(t, rec, &rm)
	return rm
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decoding response: %v (body %q)", err, rec.Body.String())
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decode(t, rec, &resp)
	return resp.Error
}
