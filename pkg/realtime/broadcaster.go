// Package realtime fans playback events out to server-sent event streams.
package realtime

import "sync"

// Message is one server-sent event: an event name and its data line.
type Message struct {
	Event string
	Data  string
}

// Broadcaster publishes messages to subscribers. Slow subscribers miss
// messages rather than block the publisher.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan Message]struct{}
	closed bool
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[chan Message]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its channel. After Close
// the returned channel is already closed.
func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers a message to all subscribers.
func (b *Broadcaster) Publish(event, data string) {
	msg := Message{Event: event, Data: data}
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
			// Lagging subscriber: drop. The next snapshot catches it up.
		}
	}
	b.mu.Unlock()
}

// Close closes every subscriber channel. Publishing after Close is a no-op.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		close(ch)
	}
	b.subs = make(map[chan Message]struct{})
}

// Len returns the number of subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
