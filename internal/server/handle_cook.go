package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/cookparty/internal/chef"
	"github.com/playperu/cookparty/internal/room"
)

// Cook turns a room's ingredients into a dish. It never fails; degraded
// generation yields fallback content.
type Cook interface {
	Cook(ctx context.Context, ingredients []string) room.Dish
}

type cookSettings struct {
	timeout  time.Duration
	allowDev bool
}

type CookRequest struct {
	RoomID string `json:"roomId"`
	IsDev  bool   `json:"isDev,omitempty"`
}

type CookResponse struct {
	Success bool       `json:"success"`
	Result  *room.Dish `json:"result,omitempty"`
}

// handleCook runs generation for a room in COUNTDOWN. Rooms in any other
// phase succeed without changes so that every client can fire this when
// its countdown hits zero.
func handleCook(logger *slog.Logger, rooms *room.Service, kitchen Cook, broker *Broker, settings cookSettings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CookRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		roomID := room.NormalizeID(req.RoomID)
		if roomID == "" {
			writeError(w, http.StatusBadRequest, "roomId is required")
			return
		}

		current, err := rooms.Get(r.Context(), roomID)
		if err != nil {
			writeRoomError(w, r, logger, "cook", roomID, "", err)
			return
		}
		if current.Phase != room.PhaseCountdown {
			writeJSON(w, http.StatusOK, CookResponse{Success: true})
			return
		}

		cooking, changed, err := rooms.BeginCooking(r.Context(), roomID)
		if err != nil {
			writeRoomError(w, r, logger, "cook", roomID, "", err)
			return
		}
		if changed {
			logRoom(r, logger, "cook-begin", cooking)
			broker.Publish(eventFor(cooking))
		}

		// Generation outlives a client that disconnects mid-cook; the result
		// still lands in the room for everyone else.
		ctx := context.WithoutCancel(r.Context())
		if settings.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, settings.timeout)
			defer cancel()
		}

		var dish room.Dish
		if req.IsDev && settings.allowDev {
			dish = chef.DevDish
		} else {
			dish = kitchen.Cook(ctx, cooking.IngredientTexts())
		}

		if _, err := rooms.Get(ctx, roomID); err != nil {
			writeRoomError(w, r, logger, "cook", roomID, "", err)
			return
		}
		done, err := rooms.SetResult(ctx, roomID, dish)
		if err != nil {
			writeRoomError(w, r, logger, "cook", roomID, "", err)
			return
		}

		logRoom(r, logger, "cook-result", done)
		broker.Publish(eventFor(done))
		writeJSON(w, http.StatusOK, CookResponse{Success: true, Result: &dish})
	}
}
