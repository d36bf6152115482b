package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/cookparty/internal/room"
)

// handleEvents streams RoomEvents over SSE. The first event carries the
// current version so a client can decide whether to fetch state at once.
func handleEvents(logger *slog.Logger, rooms *room.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := room.NormalizeID(r.URL.Query().Get("roomId"))
		if roomID == "" {
			writeError(w, http.StatusBadRequest, "roomId is required")
			return
		}

		current, err := rooms.Get(r.Context(), roomID)
		if err != nil {
			writeRoomError(w, r, logger, "events", roomID, "", err)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		ch := broker.Subscribe(roomID)
		defer broker.Unsubscribe(roomID, ch)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		first, _ := json.Marshal(eventFor(current))
		fmt.Fprintf(w, "event: state\ndata: %s\n\n", first)
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
