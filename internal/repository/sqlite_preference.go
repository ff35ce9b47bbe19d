package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
)

// SQLitePreferenceRepo implements PreferenceRepo using a SQLite database.
type SQLitePreferenceRepo struct {
	db  db.DBTX
	now func() time.Time
}

func NewSQLitePreferenceRepo(conn db.DBTX) *SQLitePreferenceRepo {
	return &SQLitePreferenceRepo{db: conn, now: time.Now}
}

func (r *SQLitePreferenceRepo) Get(ctx context.Context, key string) (*domain.Preference, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM preferences WHERE key = ?`, key)

	var (
		p         domain.Preference
		updatedAt string
	)
	if err := row.Scan(&p.Key, &p.Value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("preference %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning preference: %w", err)
	}
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func (r *SQLitePreferenceRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, formatTime(r.now())); err != nil {
		return fmt.Errorf("setting preference %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *SQLitePreferenceRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting preference %q: %w", key, err)
	}
	return nil
}

func (r *SQLitePreferenceRepo) List(ctx context.Context) ([]*domain.Preference, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM preferences ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing preferences: %w", err)
	}
	defer rows.Close()

	var out []*domain.Preference
	for rows.Next() {
		var (
			p         domain.Preference
			updatedAt string
		)
		if err := rows.Scan(&p.Key, &p.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning preference row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, &p)
	}
	return out, rows.Err()
}
