package server

import (
	"log/slog"
	"net/http"

	"github.com/playperu/cookparty/internal/room"
)

// RoomRequest is the body of actions that only name a room.
type RoomRequest struct {
	RoomID string `json:"roomId"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// handleStart opens the countdown. Starting a room that already left the
// lobby succeeds without changing it.
func handleStart(logger *slog.Logger, rooms *room.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RoomRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		roomID := room.NormalizeID(req.RoomID)
		if roomID == "" {
			writeError(w, http.StatusBadRequest, "roomId is required")
			return
		}

		rm, err := rooms.Start(r.Context(), roomID)
		if err != nil {
			writeRoomError(w, r, logger, "start", roomID, "", err)
			return
		}

		logRoom(r, logger, "start", rm)
		broker.Publish(eventFor(rm))
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
