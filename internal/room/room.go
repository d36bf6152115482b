// Package room holds the party room aggregate, its persistence and the
// phase rules that govern how players change it.
package room

import (
	"strings"
	"time"
)

type Phase string

const (
	PhaseLobby     Phase = "LOBBY"
	PhaseCountdown Phase = "COUNTDOWN"
	PhaseCooking   Phase = "COOKING"
	PhaseResult    Phase = "RESULT"
)

// Game limits.
const (
	MaxPlayers        = 5
	MaxIngredients    = 20
	MaxNicknameLen    = 20
	CountdownDuration = 30 * time.Second

	// DefaultIngredientMaxLen is the ingredient text cap in runes.
	DefaultIngredientMaxLen = 10
)

type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

type Ingredient struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Text     string `json:"text"`
}

// Dish is the generated cooking result shown in the RESULT phase.
type Dish struct {
	DishName    string `json:"dishName"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Room is one party session. Timestamps are Unix milliseconds. Players[0]
// is the host for the lifetime of the room.
type Room struct {
	ID               string       `json:"id"`
	Phase            Phase        `json:"phase"`
	Players          []Player     `json:"players"`
	Ingredients      []Ingredient `json:"ingredients"`
	CountdownEndTime *int64       `json:"countdownEndTime,omitempty"`
	Result           *Dish        `json:"result,omitempty"`
	CreatedAt        int64        `json:"createdAt"`
	UpdatedAt        int64        `json:"updatedAt"`
	Version          int64        `json:"version"`
}

// Host returns the first player to join, if any.
func (r Room) Host() (Player, bool) {
	if len(r.Players) == 0 {
		return Player{}, false
	}
	return r.Players[0], true
}

// Clone returns a deep copy that shares no slices or pointers with r.
func (r Room) Clone() Room {
	c := r
	c.Players = append(make([]Player, 0, len(r.Players)), r.Players...)
	c.Ingredients = append(make([]Ingredient, 0, len(r.Ingredients)), r.Ingredients...)
	if r.CountdownEndTime != nil {
		end := *r.CountdownEndTime
		c.CountdownEndTime = &end
	}
	if r.Result != nil {
		res := *r.Result
		c.Result = &res
	}
	return c
}

// IngredientTexts returns ingredient texts in submission order.
func (r Room) IngredientTexts() []string {
	texts := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		texts[i] = ing.Text
	}
	return texts
}

// NormalizeID canonicalizes a user-typed room code.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func key(id string) string { return "room:" + id }
