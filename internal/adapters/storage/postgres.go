package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const DefaultTable = "kv_store"

type PostgresStore struct {
	db    *sqlx.DB
	table string
}

func NewPostgresStore(db *sqlx.DB, table string) *PostgresStore {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresStore{
		db:    db,
		table: pq.QuoteIdentifier(table),
	}
}

// Migrate creates the backing table when it does not exist yet.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, p.table)

	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("storage: migrate %s: %w", p.table, err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := fmt.Sprintf(`SELECT value::text FROM %s WHERE key = $1`, p.table)

	var value string
	if err := p.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("storage: postgres get %q: %w", key, err)
	}
	return []byte(value), nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, p.table)

	if _, err := p.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("storage: postgres set %q: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, p.table)

	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("storage: postgres delete %q: %w", key, err)
	}
	return nil
}
