// Package chef turns a list of ingredients into a dish: a name and
// description from a chat model and an illustration from an image model.
// Kitchen never fails; every error degrades to a fixed fallback so that a
// room can always reach its result.
package chef

import (
	"context"
	"errors"
	"log/slog"

	"github.com/playperu/cookparty/internal/room"
)

// ErrNotConfigured is returned by clients created without an API key.
var ErrNotConfigured = errors.New("generator not configured")

// Idea is the textual part of a dish.
type Idea struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DishNamer interface {
	GenerateDish(ctx context.Context, ingredients []string) (Idea, error)
}

type Illustrator interface {
	GenerateImage(ctx context.Context, idea Idea, ingredients []string) (string, error)
}

var (
	fallbackIdea = Idea{
		Name:        "Mystery Dark Matter",
		Description: "The AI chef seems confused. Maybe the ingredients were a little too chaotic.",
	}
	fallbackImageURL = "https://placehold.co/600x400?text=Image+Generation+Failed"

	// FallbackDish is served when the whole cook step fails.
	FallbackDish = room.Dish{
		DishName:    "AI Chef's Mystery Hotpot",
		Description: "Some ingredients got spilled, but what's left looks edible enough.",
		ImageURL:    "https://placehold.co/600x400?text=Cooking+Party",
	}

	// DevDish is served in dev mode without calling any model.
	DevDish = room.Dish{
		DishName:    "Debug Curry DX",
		Description: "Fixed dev-mode response. Finished without calling the AI.",
		ImageURL:    "https://placehold.co/600x400?text=DEV+COOK",
	}
)

type Kitchen struct {
	namer       DishNamer
	illustrator Illustrator
	logger      *slog.Logger
}

func NewKitchen(namer DishNamer, illustrator Illustrator, logger *slog.Logger) *Kitchen {
	return &Kitchen{namer: namer, illustrator: illustrator, logger: logger}
}

// Cook names and illustrates a dish. Each step falls back independently.
func (k *Kitchen) Cook(ctx context.Context, ingredients []string) room.Dish {
	idea, err := k.namer.GenerateDish(ctx, ingredients)
	if err != nil || idea.Name == "" {
		k.logger.Error("dish generation failed", "error", err, "ingredients", len(ingredients))
		idea = fallbackIdea
	}

	imageURL, err := k.illustrator.GenerateImage(ctx, idea, ingredients)
	if err != nil || imageURL == "" {
		k.logger.Error("image generation failed", "error", err, "dish", idea.Name)
		imageURL = fallbackImageURL
	}

	return room.Dish{
		DishName:    idea.Name,
		Description: idea.Description,
		ImageURL:    imageURL,
	}
}
