package hub

import (
	"encoding/json"
	"sync"

	"forum/backend/internal/logger"
)

// Event types pushed to users.
const (
	EventFriendRequestReceived = "friend_request.received"
	EventFriendRequestAnswered = "friend_request.answered"
	EventPostLiked             = "post.liked"
	EventCommentCreated        = "comment.created"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single event stream. The SSE handler reads from it.
type Client chan []byte

// Recorder observes hub activity. *metrics.Metrics satisfies it.
type Recorder interface {
	EventPublished(eventType string, delivered bool)
	SubscriberAdded()
	SubscriberRemoved()
}

// Hub tracks the open event streams of every connected user.
type Hub struct {
	users    map[uint]map[Client]bool
	mu       sync.RWMutex
	recorder Recorder
}

// NewHub creates a new Hub. recorder may be nil.
func NewHub(recorder Recorder) *Hub {
	return &Hub{
		users:    make(map[uint]map[Client]bool),
		recorder: recorder,
	}
}

// Subscribe opens a new stream for userID. A user may hold several streams,
// one per open tab.
func (h *Hub) Subscribe(userID uint) Client {
	client := make(Client, 16)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[Client]bool)
	}
	h.users[userID][client] = true

	if h.recorder != nil {
		h.recorder.SubscriberAdded()
	}
	return client
}

// Unsubscribe removes a stream and closes its channel.
func (h *Hub) Unsubscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.users[userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.users, userID)
			}
			if h.recorder != nil {
				h.recorder.SubscriberRemoved()
			}
		}
	}
}

// Subscribers returns the number of open streams for userID.
func (h *Hub) Subscribers(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

// Notify sends an event to every stream of userID. It never blocks: a stream
// whose buffer is full misses the event.
func (h *Hub) Notify(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := false
	if clients, ok := h.users[userID]; ok {
		messageBytes, err := json.Marshal(event)
		if err != nil {
			logger.Error().Err(err).Str("event", event.Type).Msg("failed to encode event")
			return
		}

		for client := range clients {
			select {
			case client <- messageBytes:
				delivered = true
			default:
				logger.Debug().Uint("user_id", userID).Str("event", event.Type).Msg("event stream full, dropping event")
			}
		}
	}

	if h.recorder != nil {
		h.recorder.EventPublished(event.Type, delivered)
	}
}
