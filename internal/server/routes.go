package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/cookparty/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options) {
	broker := NewBroker()
	limiter := newIPLimiter(opts.RateLimit, opts.RateBurst)

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Cook Party API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, string(opts.StoreMode), opts.HealthChecks).Routes())

	r.Route("/api/rooms", func(r chi.Router) {
		r.Get("/state", handleState(logger, opts.Rooms))
		r.Get("/events", handleEvents(logger, opts.Rooms, broker))

		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware(limiter))
			r.Post("/create", handleCreate(logger, opts.Rooms))
			r.Post("/join", handleJoin(logger, opts.Rooms, broker))
			r.Post("/start", handleStart(logger, opts.Rooms, broker))
			r.Post("/submit", handleSubmit(logger, opts.Rooms, broker))
			r.Post("/cook", handleCook(logger, opts.Rooms, opts.Kitchen, broker, cookSettings{
				timeout:  opts.CookTimeout,
				allowDev: opts.AllowDevCook,
			}))
		})
	})

	if opts.ClientDir != "" {
		r.Get("/*", handleClient(opts.ClientDir))
	}
}
