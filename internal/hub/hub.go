package hub

import (
	"encoding/json"
	"sync"

	"socialmedia/backend/pkg/logger"

	"go.uber.org/zap"
)

// Event types published to user streams.
const (
	EventMessage = "message"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is one open stream of a user. A user may hold several
// (one per browser tab). The SSE handler reads from it.
type Client chan []byte

// Hub routes events to the open streams of each user.
type Hub struct {
	users map[uint]map[Client]struct{}
	mu    sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		users: make(map[uint]map[Client]struct{}),
	}
}

// Subscribe registers a client for userID.
func (h *Hub) Subscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[Client]struct{})
	}
	h.users[userID][client] = struct{}{}
}

// Unsubscribe removes the client and closes its channel.
func (h *Hub) Unsubscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.users[userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client)
	if len(clients) == 0 {
		delete(h.users, userID)
	}
}

// Publish sends an event to every open stream of userID. Slow clients
// whose buffer is full miss the event.
func (h *Hub) Publish(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.users[userID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("failed to encode event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	for client := range clients {
		select {
		case client <- messageBytes:
		default:
			logger.Log.Warn("dropping event for slow client", zap.Uint("userID", userID), zap.String("type", event.Type))
		}
	}
}

// Connected reports how many streams userID has open.
func (h *Hub) Connected(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}
