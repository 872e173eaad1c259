// Package notify fans out refresh events to live subscribers.
// Delivery is best-effort: a slow or dead subscriber never stalls the
// publish to the others.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yanun0323/logs"

	"main/internal/obs"
)

const subscriberBuffer = 8

// Event tells subscribers that a cycle inserted new articles.
type Event struct {
	Type      string    `json:"type"`
	Inserted  int       `json:"inserted"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRefreshEvent builds the event published after a cycle that
// inserted at least one article.
func NewRefreshEvent(inserted int, at time.Time) Event {
	return Event{Type: "refresh", Inserted: inserted, Timestamp: at}
}

// Subscriber is one live listener. Events arrive on C until
// Unsubscribe closes it.
type Subscriber struct {
	ID uuid.UUID
	C  chan Event
}

// Hub holds the live subscriber set.
type Hub struct {
	mu      sync.RWMutex
	subs    map[uuid.UUID]*Subscriber
	metrics *obs.Metrics
}

// NewHub creates an empty hub. metrics may be nil.
func NewHub(metrics *obs.Metrics) *Hub {
	return &Hub{
		subs:    make(map[uuid.UUID]*Subscriber),
		metrics: metrics,
	}
}

// Subscribe registers a new listener.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID: uuid.New(),
		C:  make(chan Event, subscriberBuffer),
	}
	h.mu.Lock()
	h.subs[sub.ID] = sub
	count := len(h.subs)
	h.mu.Unlock()

	logs.Infof("subscriber connected, total: %d", count)
	return sub
}

// Unsubscribe removes a listener and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.subs[sub.ID]; ok {
		delete(h.subs, sub.ID)
		close(sub.C)
	}
	count := len(h.subs)
	h.mu.Unlock()

	logs.Infof("subscriber disconnected, total: %d", count)
}

// Len returns the current subscriber count.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers the event to every subscriber without blocking.
// Subscribers whose buffer is full are pruned lazily on the failed
// write; the publish to the rest is unaffected. The sends happen under
// the read lock: Unsubscribe closes channels under the write lock, so
// a send can never race a close.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	var dead []*Subscriber
	for _, sub := range h.subs {
		select {
		case sub.C <- event:
		default:
			dead = append(dead, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range dead {
		logs.Infof("dropping unresponsive subscriber %s", sub.ID)
		h.metrics.IncBroadcastDrop()
		h.Unsubscribe(sub)
	}
}
