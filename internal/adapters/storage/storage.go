// Package storage persists JSON documents on pluggable key/value backends.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrKeyNotFound = errors.New("storage: key not found")

var storageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kanso",
	Subsystem: "storage",
	Name:      "failures_total",
	Help:      "Storage operations that failed and were swallowed.",
}, []string{"operation"})

// KeyValueStore is a raw byte store. Get returns ErrKeyNotFound for
// missing keys; Delete of a missing key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// JSONStorage stores values as JSON documents. Every failure is logged and
// absorbed so callers never see a storage error.
type JSONStorage struct {
	kv KeyValueStore
}

func NewJSONStorage(kv KeyValueStore) *JSONStorage {
	return &JSONStorage{kv: kv}
}

func (s *JSONStorage) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		storageFailures.WithLabelValues("encode").Inc()
		log.Printf("[STORAGE] Failed to encode %q: %v", key, err)
		return
	}

	if err := s.kv.Set(ctx, key, data); err != nil {
		storageFailures.WithLabelValues("save").Inc()
		log.Printf("[STORAGE] Failed to save %q: %v", key, err)
	}
}

func (s *JSONStorage) Load(ctx context.Context, key string, dst any) bool {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			storageFailures.WithLabelValues("load").Inc()
			log.Printf("[STORAGE] Failed to load %q: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		storageFailures.WithLabelValues("decode").Inc()
		log.Printf("[STORAGE] Corrupt value under %q, removing it: %v", key, err)
		if delErr := s.kv.Delete(ctx, key); delErr != nil {
			log.Printf("[STORAGE] Failed to remove %q: %v", key, delErr)
		}
		return false
	}

	return true
}

type namespaced struct {
	kv     KeyValueStore
	prefix string
}

// Namespace prefixes every key of kv with prefix.
func Namespace(kv KeyValueStore, prefix string) KeyValueStore {
	return &namespaced{kv: kv, prefix: prefix}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.kv.Delete(ctx, n.prefix+key)
}
