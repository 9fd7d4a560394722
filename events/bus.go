package events

import (
	"log"
	"sync"
)

// Topics published by the managers and controllers
const (
	CartUpdated      = "cart-updated"
	AdminUpdate      = "adminUpdate"
	FilterByCategory = "filterByCategory"
	FilterByDeals    = "filterByDeals"
	ShowAllProducts  = "showAllProducts"
	OpenProduct      = "openProduct"
	OpenCheckout     = "openCheckout"
	WatchlistUpdated = "watchlistUpdated"
)

// Event is a notification with an optional detail payload (category, productId, ...)
type Event struct {
	Topic  string                 `json:"topic"`
	Detail map[string]interface{} `json:"detail,omitempty"`
}

// Handler receives published events
type Handler func(Event)

// Publisher is what managers depend on; a nil Publisher is never passed around, use NopPublisher
type Publisher interface {
	Publish(evt Event)
}

// Bus is an in-process pub/sub. Delivery is synchronous on the publishing goroutine
// and carries no ordering guarantee across publishers: treat events as invalidation hints.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]Handler
}

// NewBus creates an empty Bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[string]map[int]Handler)}
}

var _ Publisher = (*Bus)(nil)

// Subscribe registers h for topic and returns a function that removes it
func (b *Bus) Subscribe(topic string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[int]Handler)
	}
	b.handlers[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[topic], id)
	}
}

// Publish delivers evt to every handler subscribed to its topic.
// A panicking handler is logged and does not stop delivery to the others.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	subs := make([]Handler, 0, len(b.handlers[evt.Topic]))
	for _, h := range b.handlers[evt.Topic] {
		subs = append(subs, h)
	}
	b.mu.RUnlock()

	for _, h := range subs {
		deliver(h, evt)
	}
}

func deliver(h Handler, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Event handler for %s panicked: %v", evt.Topic, r)
		}
	}()
	h(evt)
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
