package server

import (
	"encoding/json"
	"sync"

	"github.com/playperu/cookparty/internal/room"
)

// RoomEvent announces that a room reached a new version.
type RoomEvent struct {
	RoomID  string     `json:"roomId"`
	Version int64      `json:"version"`
	Phase   room.Phase `json:"phase"`
}

func eventFor(rm room.Room) RoomEvent {
	return RoomEvent{RoomID: rm.ID, Version: rm.Version, Phase: rm.Phase}
}

// Broker is an in-process pub/sub for room change events, keyed by room
// ID. Only changes made through this process are seen; polling the state
// endpoint stays authoritative.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the room.
func (b *Broker) Subscribe(roomID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[roomID] == nil {
		b.subs[roomID] = make(map[chan []byte]struct{})
	}
	b.subs[roomID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the room's subscribers.
func (b *Broker) Unsubscribe(roomID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[roomID], ch)
	if len(b.subs[roomID]) == 0 {
		delete(b.subs, roomID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of its room.
func (b *Broker) Publish(event RoomEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[event.RoomID] {
		select {
		case ch <- data:
		default:
			// Slow subscriber; it will catch up on the next poll.
		}
	}
	b.mu.RUnlock()
}

// Subscribers reports how many channels listen on a room.
func (b *Broker) Subscribers(roomID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[roomID])
}
