package ws

import (
	"encoding/json"
	"sync"

	"github.com/coursehub-dev/coursehub/shared/logger"
)

// Hub is the room-based fan-out layer. It holds no persisted membership: a
// client's subscriptions live only as long as its connection. The hub is an
// explicitly constructed instance handed to whoever needs to publish; there is
// no package-level registry.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	// pubMu serializes publishes so that enqueue order (and therefore per-room
	// delivery order) matches publish order.
	pubMu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

// Join subscribes a client to a room. Joining a room twice is a no-op.
func (h *Hub) Join(c *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.rooms[room]
	if !ok {
		clients = make(map[*Client]struct{})
		h.rooms[room] = clients
	}
	clients[c] = struct{}{}
	c.rooms[room] = struct{}{}
}

// Leave unsubscribes a client from a room; unknown rooms are ignored.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detach(c, room)
}

// Remove drops a client from every room it joined. Called when the connection
// closes.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		h.detach(c, room)
	}
}

// caller must hold h.mu
func (h *Hub) detach(c *Client, room string) {
	if clients, ok := h.rooms[room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

// Publish delivers an event to every client subscribed to the room. Delivery
// is best-effort: a client whose send buffer is full (slow or already gone) is
// dropped without affecting the others.
func (h *Hub) Publish(room, event string, data any) {
	msg, err := json.Marshal(ServerMessage{Event: event, Data: data})
	if err != nil {
		logger.Log.Error("failed to marshal ws message", "event", event, "error", err)
		return
	}

	h.pubMu.Lock()
	defer h.pubMu.Unlock()

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.trySend(msg) {
			// Slow or already-gone consumer; close its queue and let the
			// write pump tear the connection down. Other subscribers are
			// unaffected.
			c.closeSend()
			h.Remove(c)
		}
	}
}

// RoomSize reports current subscribers of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
