package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is the frame pushed to a user's connections.
type Event struct {
	Type      string `json:"type"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
	Payload   any    `json:"payload,omitempty"`
}

type delivery struct {
	userID  string
	message []byte
}

// Hub fans events out to the connections of a single user.
type Hub struct {
	clients    map[string]map[*Client]bool
	broadcast  chan delivery
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
	now        func() time.Time
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
		now:        time.Now,
	}
}

// Run processes registrations and deliveries until ctx is done, then closes
// every connection's send queue.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for userID, set := range h.clients {
				for c := range set {
					close(c.send)
				}
				delete(h.clients, userID)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[client.userID] = set
			}
			set[client] = true
			total := len(set)
			h.mutex.Unlock()
			h.logf("[WS] connected user=%s connections=%d", client.userID, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case d := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[d.userID]))
			for c := range h.clients[d.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- d.message:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	set := h.clients[client.userID]
	if _, ok := set[client]; ok {
		delete(set, client)
		close(client.send)
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	total := len(set)
	h.mutex.Unlock()
	h.logf("[WS] disconnected user=%s connections=%d", client.userID, total)
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Notify queues an event for userID. Events are dropped when the queue is
// full or the user has no open connection.
func (h *Hub) Notify(userID, eventType string, payload any) {
	if h == nil || userID == "" {
		return
	}

	b, err := json.Marshal(Event{
		Type:      eventType,
		UserID:    userID,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Payload:   payload,
	})
	if err != nil {
		h.logf("[WS] encode failed type=%s err=%v", eventType, err)
		return
	}

	select {
	case h.broadcast <- delivery{userID: userID, message: b}:
	default:
		h.logf("[WS] event dropped type=%s user=%s reason=buffer_full", eventType, userID)
	}
}

func (h *Hub) ClientCount(userID string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
