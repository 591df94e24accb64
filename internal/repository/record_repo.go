package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/agencyflow/internal/db"
)

// RecordRepo is a SQLite implementation of RecordRepository
type RecordRepo struct {
	db *db.DB
}

// NewRecordRepo creates a new RecordRepo
func NewRecordRepo(database *db.DB) *RecordRepo {
	return &RecordRepo{db: database}
}

// Get returns the stored value for key
func (r *RecordRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get record %s: %w", key, err)
	}
	return value, true, nil
}

// Put replaces the value for key
func (r *RecordRepo) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT OR REPLACE INTO records (key, value, updated_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, key, value, formatTime()); err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}
	return nil
}

// Update runs the read-modify-write in one transaction
func (r *RecordRepo) Update(ctx context.Context, key string, fn func(current string, found bool) (string, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	found := true
	err = tx.QueryRowContext(ctx, "SELECT value FROM records WHERE key = ?", key).Scan(&current)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to get record %s: %w", key, err)
		}
		found = false
	}

	next, err := fn(current, found)
	if err != nil {
		return err
	}

	query := `
		INSERT OR REPLACE INTO records (key, value, updated_at)
		VALUES (?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query, key, next, formatTime()); err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit record %s: %w", key, err)
	}
	return nil
}

// Delete removes key so readers fall back to defaults
func (r *RecordRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete record %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys
func (r *RecordRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key FROM records ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan record key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return keys, nil
}
