package services

import (
	"context"
	"strings"
	"sync"

	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
)

// StorageFactory returns the storage a user's history is persisted in.
type StorageFactory func(userID string) domain.Storage

// HistoryRegistry keeps one HistoryStore per user, created and loaded on
// first access.
type HistoryRegistry struct {
	newStorage StorageFactory
	colors     domain.ColorAssigner

	mu     sync.Mutex
	stores map[string]*HistoryStore

	obsMu     sync.RWMutex
	observers []func(userID string, ev domain.HistoryEvent)
}

func NewHistoryRegistry(newStorage StorageFactory, colors domain.ColorAssigner) *HistoryRegistry {
	return &HistoryRegistry{
		newStorage: newStorage,
		colors:     colors,
		stores:     make(map[string]*HistoryStore),
	}
}

// Observe registers fn for the events of every store, current and future.
func (r *HistoryRegistry) Observe(fn func(userID string, ev domain.HistoryEvent)) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, fn)
}

func (r *HistoryRegistry) dispatch(userID string, ev domain.HistoryEvent) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, fn := range r.observers {
		fn(userID, ev)
	}
}

// Store returns the user's history store, loading it from storage the
// first time it is requested.
func (r *HistoryRegistry) Store(ctx context.Context, userID string) (*HistoryStore, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[userID]; ok {
		return store, nil
	}

	store := NewHistoryStore(r.newStorage(userID), r.colors)
	store.Subscribe(func(ev domain.HistoryEvent) {
		r.dispatch(userID, ev)
	})
	store.LoadHistory(ctx)

	r.stores[userID] = store
	historyStores.Set(float64(len(r.stores)))
	return store, nil
}

// Lookup returns an already opened store without loading anything.
func (r *HistoryRegistry) Lookup(userID string) (*HistoryStore, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[userID]
	return store, ok
}

// OrderedHistory returns the ordered history of an opened store.
func (r *HistoryRegistry) OrderedHistory(userID string) (domain.OrderedHistory, bool) {
	store, ok := r.Lookup(userID)
	if !ok {
		return nil, false
	}
	return store.OrderedHistory(), true
}
