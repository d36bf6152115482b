package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultRoomTTL applies when ROOM_TTL_SECONDS is unset or too small.
const DefaultRoomTTL = 6 * time.Hour

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	StoreMode        string `env:"STORE_MODE" envDefault:"auto"`
	RedisURL         string `env:"REDIS_URL"`
	AllowMemoryStore bool   `env:"ALLOW_MEMORY_STORE" envDefault:"true"`
	DBPath           string `env:"DB_PATH" envDefault:"data/rooms.db"`

	RoomTTLSeconds   int `env:"ROOM_TTL_SECONDS" envDefault:"21600"`
	IngredientMaxLen int `env:"INGREDIENT_MAX_LEN" envDefault:"10"`

	GroqAPIKey      string        `env:"GROQ_API_KEY"`
	GroqAPIURL      string        `env:"GROQ_API_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel       string        `env:"GROQ_MODEL" envDefault:"llama3-8b-8192"`
	StabilityAPIKey string        `env:"STABILITY_API_KEY"`
	StabilityAPIURL string        `env:"STABILITY_API_URL" envDefault:"https://api.stability.ai/v2beta/stable-image/generate/core"`
	CookTimeout     time.Duration `env:"COOK_TIMEOUT" envDefault:"60s"`
	AllowDevCook    bool          `env:"ALLOW_DEV_COOK" envDefault:"false"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	ClientDir string `env:"CLIENT_DIR"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.IngredientMaxLen <= 0 {
		return nil, fmt.Errorf("INGREDIENT_MAX_LEN must be positive, got %d", cfg.IngredientMaxLen)
	}
	return &cfg, nil
}

// RoomTTL returns the configured room lifetime. Anything at or below one
// minute falls back to DefaultRoomTTL.
func (c *Config) RoomTTL() time.Duration {
	if c.RoomTTLSeconds <= 60 {
		return DefaultRoomTTL
	}
	return time.Duration(c.RoomTTLSeconds) * time.Second
}
