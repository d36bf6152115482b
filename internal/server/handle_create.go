package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/playperu/cookparty/internal/room"
)

type CreateResponse struct {
	RoomID string `json:"roomId"`
}

func handleCreate(logger *slog.Logger, rooms *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := rooms.Create(r.Context())
		if err != nil {
			writeRoomError(w, r, logger, "create", "", "", err)
			return
		}

		logger.Info("room action",
			"action", "create",
			"roomId", id,
			"version", 1,
			"phase", room.PhaseLobby,
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusOK, CreateResponse{RoomID: id})
	}
}
