// Package eventbus provides the process-wide publish/subscribe registry
// that decouples domain mutations from UI and 3D observers. Dispatch is
// synchronous and in registration order; a panicking listener is logged
// and never blocks the rest.
package eventbus

import (
	"log/slog"
	"sync"
)

// Handler receives the arguments the publisher passed to Publish.
type Handler func(args ...any)

type listener struct {
	id      int
	handler Handler
	once    bool
}

// Bus is a synchronous in-process event bus.
type Bus struct {
	mu        sync.Mutex
	listeners map[string][]listener
	nextID    int
	logger    *slog.Logger
}

// New creates an empty bus. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		listeners: make(map[string][]listener),
		logger:    logger,
	}
}

// Subscribe registers a handler for an event and returns an unsubscribe
// func. Every call adds its own registration, so distinct closures built
// from one function literal never shadow each other; the returned func
// removes exactly the registration it was created for.
func (b *Bus) Subscribe(event string, handler Handler) func() {
	return b.subscribe(event, handler, false)
}

// SubscribeOnce registers a handler that is removed after its first
// invocation.
func (b *Bus) SubscribeOnce(event string, handler Handler) func() {
	return b.subscribe(event, handler, true)
}

func (b *Bus) subscribe(event string, handler Handler, once bool) func() {
	if handler == nil {
		return func() {}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[event] = append(b.listeners[event], listener{id: id, handler: handler, once: once})
	return func() { b.unsubscribe(event, id) }
}

func (b *Bus) unsubscribe(event string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(event, id)
}

func (b *Bus) removeLocked(event string, id int) {
	current := b.listeners[event]
	for i, l := range current {
		if l.id == id {
			b.listeners[event] = append(current[:i:i], current[i+1:]...)
			break
		}
	}
	if len(b.listeners[event]) == 0 {
		delete(b.listeners, event)
	}
}

// Publish delivers the event to every registered handler, in registration
// order, and reports whether at least one listener existed. Handlers run
// against a snapshot of the listener list, so subscribing or
// unsubscribing during dispatch never affects the current emission. A
// panicking handler is recovered and logged; remaining handlers still
// run.
func (b *Bus) Publish(event string, args ...any) bool {
	b.mu.Lock()
	current := b.listeners[event]
	if len(current) == 0 {
		b.mu.Unlock()
		return false
	}
	snapshot := make([]listener, len(current))
	copy(snapshot, current)
	for _, l := range snapshot {
		if l.once {
			b.removeLocked(event, l.id)
		}
	}
	b.mu.Unlock()

	for _, l := range snapshot {
		b.invoke(event, l.handler, args)
	}
	return true
}

func (b *Bus) invoke(event string, handler Handler, args []any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener panicked",
				slog.String("event", event),
				slog.Any("panic", r),
			)
		}
	}()
	handler(args...)
}

// HasListeners reports whether any handler is registered for the event.
func (b *Bus) HasListeners(event string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[event]) > 0
}

// RemoveAll drops every handler for the event, or every handler on the
// bus when event is empty. Used at shutdown and in test teardown.
func (b *Bus) RemoveAll(event string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if event == "" {
		b.listeners = make(map[string][]listener)
		return
	}
	delete(b.listeners, event)
}
