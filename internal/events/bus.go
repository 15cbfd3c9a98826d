package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Dataset lifecycle events published by the loader cache.
const (
	DatasetLoaded      = "dataset.loaded"
	DatasetInvalidated = "dataset.invalidated"
)

// DatasetEvent describes one cache transition. It carries snapshot metadata
// only, never the records themselves.
type DatasetEvent struct {
	Name        string
	SnapshotID  uuid.UUID
	Fingerprint string
	Records     int
	LoadedAt    time.Time
}

type Handler func(context.Context, DatasetEvent) error

// Bus fans dataset events out to subscribers in subscription order,
// stopping at the first handler error.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

func (b *Bus) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

func (b *Bus) Publish(ctx context.Context, e DatasetEvent) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[e.Name]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
