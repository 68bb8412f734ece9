// Package realtime pushes view invalidations and live events to websocket subscribers.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types sent to subscribers
const (
	EventInvalidate    = "invalidate"
	EventReviewCreated = "review.created"
	EventPollUpdated   = "poll.updated"
)

// FeedView is the view carrying the live review feed
const FeedView = "/feed"

// DashboardPrefix roots the per-user dashboard views. Subscribing to the bare
// prefix means "my dashboard" and requires a session.
const DashboardPrefix = "/dashboard"

// DashboardView returns the dashboard view of userID
func DashboardView(userID string) string {
	return DashboardPrefix + "/" + userID
}

const broadcastBuffer = 256

// Event is one message delivered to the subscribers of View
type Event struct {
	Type      string    `json:"type"`
	View      string    `json:"view"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and fans events out by view
type Hub struct {
	// Registered clients organized by view
	clients map[string]map[*Client]bool

	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// Guards counts, which is read outside the run loop
	mu     sync.RWMutex
	counts map[string]int

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Event, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		counts:     make(map[string]int),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for client := range h.allClients() {
			h.removeClient(client)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) allClients() map[*Client]bool {
	all := make(map[*Client]bool)
	for _, clients := range h.clients {
		for c := range clients {
			all[c] = true
		}
	}
	return all
}

func (h *Hub) addClient(client *Client) {
	for _, view := range client.views {
		if _, ok := h.clients[view]; !ok {
			h.clients[view] = make(map[*Client]bool)
		}
		h.clients[view][client] = true
	}
	h.syncCounts()

	h.logger.Debug().
		Strs("views", client.views).
		Str("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) removeClient(client *Client) {
	removed := false
	for _, view := range client.views {
		if clients, ok := h.clients[view]; ok {
			if _, ok := clients[client]; ok {
				delete(clients, client)
				removed = true
			}
			if len(clients) == 0 {
				delete(h.clients, view)
			}
		}
	}
	if !removed {
		return
	}
	close(client.send)
	h.syncCounts()

	h.logger.Debug().
		Strs("views", client.views).
		Str("userID", client.userID).
		Msg("Client unregistered")
}

func (h *Hub) syncCounts() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.counts = make(map[string]int, len(h.clients))
	for view, clients := range h.clients {
		h.counts[view] = len(clients)
	}
}

// deliver sends event to the subscribers of its view, dropping clients that cannot keep up
func (h *Hub) deliver(event *Event) {
	clients, ok := h.clients[event.View]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("view", event.View).Msg("Failed to marshal event for broadcast")
		return
	}

	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	for _, client := range slow {
		h.logger.Warn().Str("userID", client.userID).Msg("Dropping slow realtime client")
		h.removeClient(client)
	}
}

func (h *Hub) enqueue(event *Event) {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("view", event.View).Str("type", event.Type).Msg("Realtime buffer full, dropping event")
	}
}

// Invalidate tells subscribers of each view to refetch it. It never blocks.
func (h *Hub) Invalidate(views ...string) {
	now := time.Now().UTC()
	for _, view := range views {
		h.enqueue(&Event{Type: EventInvalidate, View: view, Timestamp: now})
	}
}

// Publish sends a typed event with a payload to the subscribers of view. It never blocks.
func (h *Hub) Publish(view, eventType string, payload any) {
	h.enqueue(&Event{Type: eventType, View: view, Payload: payload, Timestamp: time.Now().UTC()})
}

// ClientsCount returns the number of clients subscribed to view
func (h *Hub) ClientsCount(view string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.counts[view]
}
