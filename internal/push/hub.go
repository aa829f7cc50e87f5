// Package push carries insert events from the message store to live
// sessions. Delivery is at-least-once with no ordering promise; the
// session reconciler handles redelivery and reordering.
package push

import (
	"context"
	"sync"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging"
)

// Publisher is the store-side half of the feed.
type Publisher interface {
	Publish(ctx context.Context, msg messaging.Message) error
}

// Feed is a full insert feed: publish on one side, subscribe on the other.
type Feed interface {
	Publisher
	messaging.InsertFeed
}

// Hub is the in-process feed for single-instance deployments. Handlers run
// on the publisher's goroutine.
type Hub struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(messaging.Message)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]func(messaging.Message))}
}

func (h *Hub) Publish(_ context.Context, msg messaging.Message) error {
	h.mu.RLock()
	handlers := make([]func(messaging.Message), 0, len(h.subs))
	for _, fn := range h.subs {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(msg)
	}
	return nil
}

func (h *Hub) Subscribe(fn func(messaging.Message)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}
