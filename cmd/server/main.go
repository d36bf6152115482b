package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/playperu/cookparty/internal/chef"
	"github.com/playperu/cookparty/internal/config"
	"github.com/playperu/cookparty/internal/handler/health"
	"github.com/playperu/cookparty/internal/kv"
	"github.com/playperu/cookparty/internal/room"
	"github.com/playperu/cookparty/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Room store ---
	store, closer, mode, err := kv.Open(ctx, kv.Options{
		Mode:             kv.Mode(cfg.StoreMode),
		RedisURL:         cfg.RedisURL,
		DBPath:           cfg.DBPath,
		AllowMemoryStore: cfg.AllowMemoryStore,
	}, logger)
	if err != nil {
		return fmt.Errorf("opening room store: %w", err)
	}
	defer closer.Close()
	logger.Info("room store selected", "mode", mode, "ttl", cfg.RoomTTL().String())

	rooms := room.NewService(
		room.NewRepository(store, cfg.RoomTTL()),
		room.WithIngredientMaxLen(cfg.IngredientMaxLen),
	)

	// --- Kitchen ---
	if cfg.GroqAPIKey == "" {
		logger.Warn("GROQ_API_KEY not set; dishes will use fallback names")
	}
	if cfg.StabilityAPIKey == "" {
		logger.Warn("STABILITY_API_KEY not set; dishes will use placeholder images")
	}
	kitchen := chef.NewKitchen(
		chef.NewGroq(cfg.GroqAPIKey, cfg.GroqAPIURL, cfg.GroqModel),
		chef.NewStability(cfg.StabilityAPIKey, cfg.StabilityAPIURL),
		logger,
	)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Options{
		Rooms:     rooms,
		Kitchen:   kitchen,
		StoreMode: mode,
		HealthChecks: map[string]health.Checker{
			"store": health.CheckerFunc(store.Ping),
		},
		CookTimeout:  cfg.CookTimeout,
		AllowDevCook: cfg.AllowDevCook,
		RateLimit:    rate.Limit(cfg.RateLimitRPS),
		RateBurst:    cfg.RateLimitBurst,
		ClientDir:    cfg.ClientDir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
