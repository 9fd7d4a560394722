package repository

import (
	"context"
	"sync"
	"testing"

	"luxemarket/colors"
	"luxemarket/events"
	"luxemarket/storage"
)

// recorder captures published events
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(evt events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) count(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Topic == topic {
			n++
		}
	}
	return n
}

type fixture struct {
	store      *storage.MemoryStore
	bus        *recorder
	categories *CategoryRepository
	products   *ProductRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemoryStore()
	bus := &recorder{}
	categories := NewCategoryRepository(store, bus)
	products := NewProductRepository(store, categories, colors.NewResolver(), bus)
	return &fixture{store: store, bus: bus, categories: categories, products: products}
}

func (f *fixture) put(t *testing.T, key, raw string) {
	t.Helper()
	if err := f.store.Set(context.Background(), key, raw); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) raw(t *testing.T, key string) string {
	t.Helper()
	v, ok, err := f.store.Get(context.Background(), key)
	if err != nil || !ok {
		t.Fatalf("key %s missing (err=%v)", key, err)
	}
	return v
}
