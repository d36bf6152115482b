package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/playperu/cookparty/internal/room"
)

// handleState serves GET /api/rooms/state?roomId=&sinceVersion=. A client
// already holding the current version gets 204 with no body.
func handleState(logger *slog.Logger, rooms *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)

		roomID := room.NormalizeID(r.URL.Query().Get("roomId"))
		if roomID == "" {
			writeError(w, http.StatusBadRequest, "roomId is required")
			return
		}

		var since int64
		if v := r.URL.Query().Get("sinceVersion"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				since = n
			}
		}

		poll, err := rooms.State(r.Context(), roomID, since)
		if err != nil {
			writeRoomError(w, r, logger, "state", roomID, "", err)
			return
		}

		switch poll.Status {
		case room.PollMissing:
			writeError(w, http.StatusNotFound, "room not found")
		case room.PollUnchanged:
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusOK, poll.Room)
		}
	}
}
