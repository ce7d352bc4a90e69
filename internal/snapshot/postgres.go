package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const snapshotSchema = `
	CREATE TABLE IF NOT EXISTS app_snapshots (
		key        TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// PostgresBackend keeps the session blob in a single jsonb row.
type PostgresBackend struct {
	db  *sqlx.DB
	key string
}

// NewPostgresBackend connects to Postgres and ensures the snapshot table.
func NewPostgresBackend(databaseURL, key string) (*PostgresBackend, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(snapshotSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure snapshot table: %w", err)
	}

	return &PostgresBackend{db: db, key: key}, nil
}

// Save upserts the blob in one statement.
func (b *PostgresBackend) Save(ctx context.Context, blob []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO app_snapshots (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		b.key, blob)
	return err
}

// Load reads the blob, returning (nil, nil) when the row does not exist.
func (b *PostgresBackend) Load(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := b.db.GetContext(ctx, &blob,
		"SELECT data FROM app_snapshots WHERE key = $1", b.key)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// Close closes the database connection.
func (b *PostgresBackend) Close() error {
	return b.db.Close()
}
