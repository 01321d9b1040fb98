package inmem

import (
	"context"
	"sync"

	"github.com/m04kA/companion-booking/internal/domain"
)

// Dispatcher запоминает отправленные события
type Dispatcher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (d *Dispatcher) Dispatch(_ context.Context, events ...domain.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, events...)
}

func (d *Dispatcher) Types() []domain.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.EventType, len(d.events))
	for i, e := range d.events {
		out[i] = e.Type
	}
	return out
}

func (d *Dispatcher) Events() []domain.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Event(nil), d.events...)
}
