// Package notify fans out transient user notifications ("toasts").
package notify

import (
	"context"
	"sync"
	"time"
)

// Notification is a single toast.
type Notification struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Hub keeps the most recent notifications and delivers new ones to
// subscribers. Slow subscribers drop notifications instead of blocking
// publishers.
type Hub struct {
	mu      sync.Mutex
	recent  []Notification
	limit   int
	subs    map[chan Notification]struct{}
	nowFunc func() time.Time
}

// NewHub creates a hub that remembers up to limit notifications.
func NewHub(limit int) *Hub {
	if limit <= 0 {
		limit = 20
	}
	return &Hub{
		limit:   limit,
		subs:    make(map[chan Notification]struct{}),
		nowFunc: time.Now,
	}
}

// Notify publishes message to every subscriber.
func (h *Hub) Notify(_ context.Context, message string) {
	n := Notification{Message: message, At: h.nowFunc()}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append(h.recent, n)
	if len(h.recent) > h.limit {
		h.recent = h.recent[len(h.recent)-h.limit:]
	}
	for ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Recent returns the remembered notifications, oldest first.
func (h *Hub) Recent() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Notification(nil), h.recent...)
}

// Subscribe returns a channel receiving new notifications until ctx is done.
// The channel is closed after cancellation.
func (h *Hub) Subscribe(ctx context.Context) <-chan Notification {
	ch := make(chan Notification, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}
