package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const mysqlSchema = `
	CREATE TABLE IF NOT EXISTS storefront_state (
		state_key  VARCHAR(64) NOT NULL PRIMARY KEY,
		data       LONGBLOB    NOT NULL,
		updated_at DATETIME(3) NOT NULL
	)`

// MySQLAdapter stores snapshots as rows of storefront_state.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, mysqlSchema); err != nil {
		return fmt.Errorf("create storefront_state: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := m.db.QueryRowContext(ctx, `
		SELECT data FROM storefront_state WHERE state_key = ?`, key,
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query state %s: %w", key, err)
	}
	return data, true, nil
}

func (m *MySQLAdapter) Save(ctx context.Context, key string, data []byte) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO storefront_state (state_key, data, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = VALUES(updated_at)`,
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert state %s: %w", key, err)
	}
	return nil
}
