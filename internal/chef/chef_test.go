package chef

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/playperu/cookparty/internal/room"
)

type stubNamer struct {
	idea Idea
	err  error
}

func (s stubNamer) GenerateDish(context.Context, []string) (Idea, error) { return s.idea, s.err }

type stubIllustrator struct {
	url  string
	err  error
	seen *Idea
}

func (s stubIllustrator) GenerateImage(_ context.Context, idea Idea, _ []string) (string, error) {
	if s.seen != nil {
		*s.seen = idea
	}
	return s.url, s.err
}

func TestKitchenCook(t *testing.T) {
	idea := Idea{Name: "Egg Tower", Description: "Eggs on eggs."}

	tests := []struct {
		name        string
		namer       DishNamer
		illustrator Illustrator
		want        room.Dish
	}{
		{
			name:        "both succeed",
			namer:       stubNamer{idea: idea},
			illustrator: stubIllustrator{url: "data:image/png;base64,AAA"},
			want:        room.Dish{DishName: "Egg Tower", Description: "Eggs on eggs.", ImageURL: "data:image/png;base64,AAA"},
		},
		{
			name:        "naming fails",
			namer:       stubNamer{err: errors.New("rate limited")},
			illustrator: stubIllustrator{url: "data:image/png;base64,AAA"},
			want:        room.Dish{DishName: fallbackIdea.Name, Description: fallbackIdea.Description, ImageURL: "data:image/png;base64,AAA"},
		},
		{
			name:        "image fails",
			namer:       stubNamer{idea: idea},
			illustrator: stubIllustrator{err: errors.New("boom")},
			want:        room.Dish{DishName: "Egg Tower", Description: "Eggs on eggs.", ImageURL: fallbackImageURL},
		},
		{
			name:        "nothing configured",
			namer:       NewGroq("", "http://unused", "m"),
			illustrator: NewStability("", "http://unused"),
			want:        room.Dish{DishName: fallbackIdea.Name, Description: fallbackIdea.Description, ImageURL: fallbackImageURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKitchen(tt.namer, tt.illustrator, slog.Default())
			assert.Equal(t, tt.want, k.Cook(context.Background(), []string{"egg"}))
		})
	}
}

func TestKitchenIllustratesFallbackIdea(t *testing.T) {
	var seen Idea
	k := NewKitchen(stubNamer{err: errors.New("down")}, stubIllustrator{url: "u", seen: &seen}, slog.Default())

	k.Cook(context.Background(), nil)
	assert.Equal(t, fallbackIdea, seen)
}
