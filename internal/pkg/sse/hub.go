package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	ProfileID string
	Event     string
	Data      interface{}
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a profile and returns the event
// channel and a cleanup function.
func (h *Hub) Subscribe(profileID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[profileID] == nil {
		h.subscribers[profileID] = make(map[chan Event]struct{})
	}
	h.subscribers[profileID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[profileID], ch)
		close(ch)
		if len(h.subscribers[profileID]) == 0 {
			delete(h.subscribers, profileID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a specific profile.
func (h *Hub) Publish(profileID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[profileID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a profile.
func (h *Hub) SubscriberCount(profileID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[profileID]; ok {
		return len(subs)
	}
	return 0
}
