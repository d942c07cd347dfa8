package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, r.db, key, value)
}

// SetMany writes all values atomically when the repository wraps a *sql.DB.
// Inside an existing transaction the writes simply join it.
func (r *SQLiteRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	return r.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range values {
			if err := set(ctx, tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the given keys. Missing keys are not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	return r.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, k); err != nil {
				return fmt.Errorf("failed to delete metadata[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) inTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if b, ok := r.db.(dbx.TxBeginner); ok {
		return dbx.WithTx(ctx, b, nil, fn)
	}
	return fn(ctx, r.db)
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}
