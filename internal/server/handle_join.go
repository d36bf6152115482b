package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/playperu/cookparty/internal/room"
)

type JoinRequest struct {
	RoomID   string `json:"roomId"`
	Nickname string `json:"nickname"`
}

type JoinResponse struct {
	Player room.Player `json:"player"`
}

func handleJoin(logger *slog.Logger, rooms *room.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		roomID := room.NormalizeID(req.RoomID)
		nickname := strings.TrimSpace(req.Nickname)
		if roomID == "" || nickname == "" {
			writeError(w, http.StatusBadRequest, "roomId and nickname are required")
			return
		}

		player, rm, err := rooms.Join(r.Context(), roomID, nickname)
		if err != nil {
			if rm.ID != "" {
				logRoom(r, logger, "join-deny", rm)
			}
			writeRoomError(w, r, logger, "join", roomID,
				"the room is full or the game has already started; wait for the next game", err)
			return
		}

		logRoom(r, logger, "join-ok", rm)
		broker.Publish(eventFor(rm))
		writeJSON(w, http.StatusOK, JoinResponse{Player: player})
	}
}
