package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/playperu/cookparty/internal/room"
)

type SubmitRequest struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Text     string `json:"text"`
}

func handleSubmit(logger *slog.Logger, rooms *room.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		roomID := room.NormalizeID(req.RoomID)
		text := strings.TrimSpace(req.Text)
		if roomID == "" || req.PlayerID == "" || text == "" {
			writeError(w, http.StatusBadRequest, "roomId, playerId and text are required")
			return
		}

		rm, err := rooms.SubmitIngredient(r.Context(), roomID, req.PlayerID, text)
		if err != nil {
			if rm.ID != "" {
				logRoom(r, logger, "submit-deny", rm)
			}
			writeRoomError(w, r, logger, "submit", roomID,
				"failed to add ingredient (invalid phase, limit reached or text too long)", err)
			return
		}

		logRoom(r, logger, "submit-ok", rm)
		broker.Publish(eventFor(rm))
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
