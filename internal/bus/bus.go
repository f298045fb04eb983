package bus

import (
	"log/slog"
	"sync"
)

// Bus fans out "local data changed" signals to subscribed listeners.
// Delivery is synchronous and in subscription order, so a caller that
// triggered a mutation observes every active listener run before it proceeds.
type Bus struct {
	mu        sync.Mutex
	next      int
	listeners []subscription
}

type subscription struct {
	id int
	fn func()
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing is idempotent.
func (b *Bus) Subscribe(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		kept := b.listeners[:0]
		for _, sub := range b.listeners {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		b.listeners = kept
	}
}

// Publish invokes every currently subscribed listener. Listeners are
// isolated: a panicking listener is logged and the rest still run.
func (b *Bus) Publish() {
	b.mu.Lock()
	current := make([]subscription, len(b.listeners))
	copy(current, b.listeners)
	b.mu.Unlock()

	for _, sub := range current {
		invoke(sub.fn)
	}
}

func invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("data change listener panicked", "panic", r)
		}
	}()
	fn()
}
