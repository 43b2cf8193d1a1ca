package state

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/sitekeeper/internal/logging"
)

// Event names published to subscribers.
type Event string

const (
	EventStateChanged      Event = "state-changed"
	EventSiteAdded         Event = "site-added"
	EventSiteUpdated       Event = "site-updated"
	EventSiteDeleted       Event = "site-deleted"
	EventCredentialChecked Event = "credential-checked"
	EventFilterChanged     Event = "filter-changed"
	EventThemeChanged      Event = "theme-changed"
	EventViewChanged       Event = "view-changed"
	EventSearchPerformed   Event = "search-performed"
	EventExportCompleted   Event = "export-completed"
	EventImportCompleted   Event = "import-completed"
)

// Handler receives the event payload. Delivery is synchronous: a handler
// that mutates state re-enters the store within the publish call, which
// consumers should avoid.
type Handler func(payload any)

type subscriber struct {
	id int
	fn Handler
}

// Bus is an in-process observer list. Subscribers for an event are invoked
// in registration order, and a panicking subscriber never prevents the
// remaining ones from running.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[Event][]subscriber
	log  logging.Logger
}

func NewBus(log logging.Logger) *Bus {
	return &Bus{subs: make(map[Event][]subscriber), log: log.With("component", "bus")}
}

// Subscribe registers fn for event and returns an unsubscribe handle.
func (b *Bus) Subscribe(event Event, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.subs[event] = append(b.subs[event], subscriber{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[event]
		for i := range list {
			if list[i].id == id {
				b.subs[event] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers payload to every subscriber of event, in registration
// order. Panics are caught and logged per subscriber.
func (b *Bus) Publish(event Event, payload any) {
	b.mu.Lock()
	list := make([]subscriber, len(b.subs[event]))
	copy(list, b.subs[event])
	b.mu.Unlock()

	for _, sub := range list {
		b.deliver(event, sub, payload)
	}
}

func (b *Bus) deliver(event Event, sub subscriber, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error(context.Background(), "subscriber panicked", "event", string(event), "panic", r)
		}
	}()
	sub.fn(payload)
}
