// Package events fans out confinement transitions to subscribers.
package events

import (
	"sync"
	"time"

	"github.com/frudas24/cursorclip/internal/region"
)

// Event describes one state machine transition or toggle.
type Event struct {
	Time    time.Time    `json:"time"`
	From    string       `json:"from"`
	To      string       `json:"to"`
	Reason  string       `json:"reason"`
	Region  *region.Rect `json:"region,omitempty"`
	Enabled bool         `json:"enabled"`
}

// subscriberBuffer is the per-subscriber queue depth; slow subscribers lose the oldest event.
const subscriberBuffer = 16

// Hub broadcasts events to subscribers without ever blocking the publisher.
type Hub struct {
	mu        sync.RWMutex
	subs      map[chan Event]struct{}
	last      *Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{}), done: make(chan struct{})}
}

// Publish delivers ev to every subscriber, dropping the oldest queued event for
// subscribers that are full.
func (h *Hub) Publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := ev
	h.last = &cp
	for ch := range h.subs {
		select {
		case ch <- ev:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

// Last returns the most recent event.
func (h *Hub) Last() (Event, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.last == nil {
		return Event{}, false
	}
	return *h.last, true
}

// Subscribe registers a new subscriber channel.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes ch. The channel is not closed so a racing Publish cannot panic.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close tells every subscriber to go away. Publish keeps working afterwards.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Done is closed by Close.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
