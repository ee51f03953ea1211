package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

// busPublisher is the cross-instance side of the hub; the Redis bus
// satisfies it. Nil means single-instance local delivery.
type busPublisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Client is one open SSE connection. A user may hold several at once
// (multiple tabs); each gets every event addressed to the user.
type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Outbound chan Message
	done     chan struct{}
}

// Hub routes Messages to the local connections of their target user.
// Publish goes through the bus when one is configured so peers deliver to
// their own connections too.
type Hub struct {
	mu      sync.RWMutex
	log     *logger.Logger
	bus     busPublisher
	clients map[uuid.UUID]map[*Client]bool
}

func NewHub(log *logger.Logger, bus busPublisher) *Hub {
	return &Hub{
		log:     log.With("component", "Hub"),
		bus:     bus,
		clients: make(map[uuid.UUID]map[*Client]bool),
	}
}

func (h *Hub) NewClient(userID uuid.UUID) *Client {
	c := &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Outbound: make(chan Message, 16),
		done:     make(chan struct{}),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*Client]bool)
		h.clients[userID] = set
	}
	set[c] = true
	h.log.Debug("sse client connected", "client_id", c.ID.String())
	return c
}

func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.log.Debug("sse client removed", "client_id", c.ID.String())
}

func (h *Hub) CloseClient(c *Client) {
	close(c.done)
	h.RemoveClient(c)
	close(c.Outbound)
}

// Publish sends msg through the bus when configured, otherwise delivers
// locally. Implements Publisher.
func (h *Hub) Publish(ctx context.Context, msg Message) error {
	if h.bus != nil {
		return h.bus.Publish(ctx, msg)
	}
	h.Deliver(msg)
	return nil
}

// Deliver pushes msg to every local connection of its target user. Slow
// consumers drop messages rather than block the hub.
func (h *Hub) Deliver(msg Message) {
	if msg.UserID == uuid.Nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[msg.UserID] {
		select {
		case c.Outbound <- msg:
		default:
			h.log.Warn("dropping sse message; outbound buffer full", "client_id", c.ID.String())
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, c *Client) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ctx := r.Context()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg := <-c.Outbound:
			raw, err := json.Marshal(msg)
			if err != nil {
				h.log.Warn("failed to marshal sse message", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			fmt.Fprintf(w, "data: %s\n\n", raw)
			flusher.Flush()
		}
	}
}
