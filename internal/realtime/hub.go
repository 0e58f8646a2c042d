package realtime

import (
	"encoding/json"
	"sync"

	"github.com/nikitavr/sociable/pkg/logger"
)

// UserRef identifies a message party in an outbound payload
type UserRef struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// MessagePayload is the wire format pushed to connected clients when a
// message is created
type MessagePayload struct {
	ID        uint    `json:"id"`
	Sender    UserRef `json:"sender"`
	Recipient UserRef `json:"recipient"`
	Body      string  `json:"body"`
	CreatedAt string  `json:"createdAt"`
}

// Hub is the connection registry for real-time delivery, keyed by user id.
// A user may hold several live connections (multiple tabs/devices).
type Hub struct {
	mu     sync.RWMutex
	byUser map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		byUser: make(map[uint]map[*Client]struct{}),
	}
}

// Register adds a client to the registry
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.byUser[c.UserID]
	if clients == nil {
		clients = make(map[*Client]struct{})
		h.byUser[c.UserID] = clients
	}
	clients[c] = struct{}{}
}

// Unregister removes a client from the registry and closes its send queue
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.byUser[c.UserID]
	if clients == nil {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.byUser, c.UserID)
	}
	c.close()
}

// IsOnline reports whether the user has at least one live connection
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID]) > 0
}

// clientsOf snapshots the user's connections
func (h *Hub) clientsOf(userID uint) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.byUser[userID]
	if len(clients) == 0 {
		return nil
	}
	out := make([]*Client, 0, len(clients))
	for c := range clients {
		out = append(out, c)
	}
	return out
}

// Notify pushes a payload to every live connection of the user. Delivery is
// best effort: a client whose send queue is full is skipped rather than
// blocking the caller.
func (h *Hub) Notify(userID uint, payload MessagePayload) {
	clients := h.clientsOf(userID)
	if clients == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal realtime payload", "error", err)
		return
	}

	for _, c := range clients {
		if !c.trySend(data) {
			logger.Warn("Dropped realtime payload for slow client", "user_id", userID)
		}
	}
}
