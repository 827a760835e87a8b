// Package bootstrap opens the storage backend selected by the configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-history/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-history/internal/adapters/storage"
	"github.com/comitanigiacomo/kanso-history/internal/config"
	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
)

// Backend is an opened key/value store plus what it took to open it.
type Backend struct {
	KV storage.KeyValueStore

	// DB is set for the postgres driver, Redis for the redis driver.
	DB    *sqlx.DB
	Redis *redis.Client

	closers []func() error
}

func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		b.KV = storage.NewMemoryStore()

	case config.DriverFile:
		fs, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		b.KV = fs

	case config.DriverBadger:
		bs, err := storage.OpenBadgerStore(storage.BadgerConfig{
			Path:       cfg.BadgerPath,
			SyncWrites: true,
		})
		if err != nil {
			return nil, err
		}
		b.KV = bs
		b.closers = append(b.closers, bs.Close)

	case config.DriverRedis:
		rdb, err := cache.NewRedisClient(RedisOptions(cfg))
		if err != nil {
			return nil, err
		}
		b.Redis = rdb
		b.KV = storage.NewRedisStore(rdb, "kanso")
		b.closers = append(b.closers, rdb.Close)

	case config.DriverPostgres:
		db, err := ConnectPostgres(cfg)
		if err != nil {
			return nil, err
		}
		b.DB = db
		b.closers = append(b.closers, db.Close)

		ps := storage.NewPostgresStore(db, storage.DefaultTable)
		if err := ps.Migrate(ctx); err != nil {
			b.Close()
			return nil, err
		}
		b.KV = ps

	default:
		return nil, fmt.Errorf("bootstrap: unknown storage driver %q", cfg.StorageDriver)
	}

	log.Printf("[STORAGE] Using %s backend", cfg.StorageDriver)
	return b, nil
}

// StorageFor returns the JSON storage of one user's history.
func (b *Backend) StorageFor(userID string) domain.Storage {
	return storage.NewJSONStorage(storage.Namespace(b.KV, "users/"+userID+"/"))
}

func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	b.closers = nil
	return first
}

func RedisOptions(cfg *config.Config) cache.Options {
	return cache.Options{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

func ConnectPostgres(cfg *config.Config) (*sqlx.DB, error) {
	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")
	return db, nil
}
