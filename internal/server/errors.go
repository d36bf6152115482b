package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/playperu/cookparty/internal/room"
)

// writeRoomError maps the room error taxonomy onto HTTP: missing rooms are
// 404, declined actions 409 and store outages 503, so a client can show a
// different message for each.
func writeRoomError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, action, roomID, declined string, err error) {
	switch {
	case errors.Is(err, room.ErrNotFound):
		writeError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, room.ErrDeclined):
		writeError(w, http.StatusConflict, declined)
	case errors.Is(err, room.ErrUnavailable):
		logger.Error("room store unavailable",
			"action", action,
			"roomId", roomID,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		noStore(w)
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		logger.Error("room action failed",
			"action", action,
			"roomId", roomID,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// logRoom writes the per-action audit line.
func logRoom(r *http.Request, logger *slog.Logger, action string, rm room.Room) {
	logger.Info("room action",
		"action", action,
		"roomId", rm.ID,
		"version", rm.Version,
		"phase", rm.Phase,
		"request_id", middleware.GetReqID(r.Context()),
	)
}
