package storage

import "sync"

type listener struct {
	id int
	fn func(key string)
}

// Broadcaster fans preference change keys out to subscribers.
// Delivery holds a read lock, so Close on a Subscription blocks until any
// in-progress delivery has returned and no later callback can start.
type Broadcaster struct {
	mu        sync.RWMutex
	nextID    int
	listeners []listener
}

// Subscription is the handle returned by Subscribe
type Subscription struct {
	b    *Broadcaster
	id   int
	once sync.Once
}

// Subscribe registers fn and returns its handle
func (b *Broadcaster) Subscribe(fn func(key string)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.listeners = append(b.listeners, listener{id: b.nextID, fn: fn})
	return &Subscription{b: b, id: b.nextID}
}

// Notify calls every subscriber with key, in subscription order
func (b *Broadcaster) Notify(key string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, l := range b.listeners {
		l.fn(key)
	}
}

// Len returns the number of active subscriptions
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

func (b *Broadcaster) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Close unsubscribes. It is safe to call more than once and on a nil handle.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.b.remove(s.id)
	})
}
