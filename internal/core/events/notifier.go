package events

import "sync"

// Notifier is a minimal per-store publish/subscribe list. Stores notify
// after a committed mutation and never after a rollback; handlers run
// synchronously on the notifying goroutine, in no particular order.
type Notifier struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func()
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{handlers: make(map[int]func())}
}

// Subscribe registers a change handler and returns its unsubscribe
// function. Unsubscribing more than once is a no-op.
func (n *Notifier) Subscribe(handler func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.handlers[id] = handler
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.handlers, id)
	}
}

// Notify invokes every currently registered handler.
func (n *Notifier) Notify() {
	n.mu.Lock()
	handlers := make([]func(), 0, len(n.handlers))
	for _, h := range n.handlers {
		handlers = append(handlers, h)
	}
	n.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}
