package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
)

type BadgerConfig struct {
	// Path is ignored when InMemory is set.
	Path       string
	InMemory   bool
	SyncWrites bool
	// Verbose forwards badger's own log output to the standard logger.
	Verbose bool
}

func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{InMemory: true}
}

type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	log.Printf("[BADGER] ERROR "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	log.Printf("[BADGER] WARN "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	log.Printf("[BADGER] "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {}

type BadgerStore struct {
	db *badger.DB
}

func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("storage: badger path is required for a persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("storage: create badger directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Verbose {
		opts = opts.WithLogger(badgerLogger{})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("storage: badger get %q: %w", key, err)
	}
	return value, nil
}

func (b *BadgerStore) Set(ctx context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("storage: badger set %q: %w", key, err)
	}
	return nil
}

func (b *BadgerStore) Delete(ctx context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("storage: badger delete %q: %w", key, err)
	}
	return nil
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
