// Package health serves the readiness endpoint.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Checker verifies that an infrastructure dependency is reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a ping function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

type Handler struct {
	storeMode string
	checks    map[string]Checker
	logger    *slog.Logger
}

func NewHandler(logger *slog.Logger, storeMode string, checks map[string]Checker) *Handler {
	return &Handler{storeMode: storeMode, checks: checks, logger: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.check)
	return r
}

type CheckResult struct {
	Status string `json:"status"`
}

// Response is the body of GET /healthz.
type Response struct {
	Status    string            `json:"status"`
	StoreMode string            `json:"storeMode"`
	Checks    map[string]CheckResult `json:"checks"`
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := Response{
		Status:    "ok",
		StoreMode: h.storeMode,
		Checks:    make(map[string]CheckResult, len(h.checks)),
	}
	status := http.StatusOK

	for name, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			h.logger.Error("health check failed", "name", name, "error", err)
			resp.Checks[name] = CheckResult{Status: "error"}
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = CheckResult{Status: "ok"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
