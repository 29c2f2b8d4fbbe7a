// Package events fans unlock notifications out to connected clients.
package events

import (
	"sync"
	"time"

	"github.com/thatchakomP/pixel-cat-callior/entity"
	"github.com/thatchakomP/pixel-cat-callior/logger"
)

// Unlock is sent to a user's subscribers when cats are unlocked.
type Unlock struct {
	UserID string       `json:"-"`
	Cats   []entity.Cat `json:"cats"`
	At     time.Time    `json:"at"`
}

// Broker keeps per-user subscriber channels.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Unlock]struct{}
}

func NewBroker() *Broker {
	return &Broker{subscribers: make(map[string]map[chan Unlock]struct{})}
}

// Subscribe registers a buffered channel for the user. The returned func
// unregisters and closes it.
func (b *Broker) Subscribe(userID string, buffer int) (<-chan Unlock, func()) {
	ch := make(chan Unlock, buffer)
	b.mu.Lock()
	if b.subscribers[userID] == nil {
		b.subscribers[userID] = make(map[chan Unlock]struct{})
	}
	b.subscribers[userID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers[userID], ch)
			if len(b.subscribers[userID]) == 0 {
				delete(b.subscribers, userID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers ev to every subscriber of ev.UserID. Slow subscribers
// miss the event rather than block the publisher.
func (b *Broker) Publish(ev Unlock) {
	if len(ev.Cats) == 0 {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers[ev.UserID] {
		select {
		case ch <- ev:
		default:
			logger.Warn("Dropping unlock event for slow subscriber", "user_id", ev.UserID)
		}
	}
}

// Subscribers reports how many channels are registered for a user.
func (b *Broker) Subscribers(userID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[userID])
}
