package room

import (
	"time"
	"unicode/utf8"
)

// The phase rules. A room only moves forward:
//
//	LOBBY --Start--> COUNTDOWN --BeginCooking--> COOKING --SetResult--> RESULT
//
// Join is legal only in LOBBY and SubmitIngredient only in COUNTDOWN.
// BeginCooking may also be taken straight from LOBBY. SetResult is
// unguarded so that a room can always be finished.

// JoinMutator appends a player with a fresh id. The new player is the last
// element of Players in the applied room.
func JoinMutator(nickname string, newID func() string) Mutator {
	return func(r Room) Outcome {
		if r.Phase != PhaseLobby || len(r.Players) >= MaxPlayers {
			return Unchanged()
		}
		r.Players = append(r.Players, Player{ID: newID(), Nickname: nickname})
		return Applied(r)
	}
}

// StartMutator opens the ingredient countdown.
func StartMutator(now time.Time) Mutator {
	return func(r Room) Outcome {
		if r.Phase != PhaseLobby {
			return Unchanged()
		}
		end := now.Add(CountdownDuration).UnixMilli()
		r.Phase = PhaseCountdown
		r.CountdownEndTime = &end
		return Applied(r)
	}
}

// SubmitMutator appends an ingredient. maxLen is counted in runes.
// playerID is recorded as given; membership is not checked.
func SubmitMutator(playerID, text string, maxLen int, newID func() string) Mutator {
	return func(r Room) Outcome {
		if r.Phase != PhaseCountdown {
			return Unchanged()
		}
		if len(r.Ingredients) >= MaxIngredients {
			return Unchanged()
		}
		if utf8.RuneCountInString(text) > maxLen {
			return Unchanged()
		}
		r.Ingredients = append(r.Ingredients, Ingredient{
			ID:       newID(),
			PlayerID: playerID,
			Text:     text,
		})
		return Applied(r)
	}
}

// BeginCookingMutator is a no-op once the room is cooking or finished, so
// duplicate triggers are harmless.
func BeginCookingMutator() Mutator {
	return func(r Room) Outcome {
		if r.Phase == PhaseCooking || r.Phase == PhaseResult {
			return Unchanged()
		}
		r.Phase = PhaseCooking
		return Applied(r)
	}
}

// SetResultMutator records the dish and finishes the room from any phase.
func SetResultMutator(dish Dish) Mutator {
	return func(r Room) Outcome {
		r.Result = &dish
		r.Phase = PhaseResult
		return Applied(r)
	}
}
