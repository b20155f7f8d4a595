// Package event provides a small in-process event dispatcher.
//
//	d := event.New()
//	d.Listen("order.placed", func(ctx context.Context, payload any) { ... })
//	d.Fire(ctx, "order.placed", order)
package event

import (
	"context"
	"sync"
)

// Handler is a function that receives an event payload.
type Handler func(ctx context.Context, payload any)

// Dispatcher fans an event out to every handler registered for its name.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func New() *Dispatcher {
	return &Dispatcher{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (d *Dispatcher) Listen(event string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = append(d.handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners in
// registration order. A nil Dispatcher drops the event.
func (d *Dispatcher) Fire(ctx context.Context, event string, payload any) {
	if d == nil {
		return
	}

	d.mu.RLock()
	hs := make([]Handler, len(d.handlers[event]))
	copy(hs, d.handlers[event])
	d.mu.RUnlock()

	for _, h := range hs {
		h(ctx, payload)
	}
}

// Has reports whether any handler listens for event.
func (d *Dispatcher) Has(event string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[event]) > 0
}
