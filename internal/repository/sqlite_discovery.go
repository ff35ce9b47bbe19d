package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
)

const discoveryColumns = `id, conversation_id, name, email, complexity, lead_score,
	estimated_effort, business_impact, submitted, submission_message, data_json,
	started_at, completed_at, duration_sec`

// SQLiteDiscoveryRepo implements DiscoveryRepo using a SQLite database.
type SQLiteDiscoveryRepo struct {
	db db.DBTX
}

func NewSQLiteDiscoveryRepo(conn db.DBTX) *SQLiteDiscoveryRepo {
	return &SQLiteDiscoveryRepo{db: conn}
}

func (r *SQLiteDiscoveryRepo) Create(ctx context.Context, rec *domain.DiscoveryRecord) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("encoding discovery data: %w", err)
	}

	query := `INSERT INTO discovery_sessions (` + discoveryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ConversationID,
		rec.Name,
		rec.Email,
		string(rec.Complexity),
		rec.LeadScore,
		rec.EstimatedEffort,
		rec.BusinessImpact,
		boolToInt(rec.Submitted),
		rec.SubmissionMessage,
		string(data),
		formatTime(rec.StartedAt),
		formatTime(rec.CompletedAt),
		rec.DurationSec,
	)
	if err != nil {
		return fmt.Errorf("inserting discovery session: %w", err)
	}
	return nil
}

func (r *SQLiteDiscoveryRepo) GetByID(ctx context.Context, id string) (*domain.DiscoveryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+discoveryColumns+` FROM discovery_sessions WHERE id = ?`, id)
	rec, err := scanDiscovery(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("discovery session: %w", ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

// ListRecent returns the newest records first. limit <= 0 means no limit.
func (r *SQLiteDiscoveryRepo) ListRecent(ctx context.Context, limit int) ([]*domain.DiscoveryRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+discoveryColumns+` FROM discovery_sessions ORDER BY completed_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing discovery sessions: %w", err)
	}
	defer rows.Close()

	var out []*domain.DiscoveryRecord
	for rows.Next() {
		rec, err := scanDiscovery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteDiscoveryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM discovery_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting discovery session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("discovery session %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDiscovery(s scanner) (*domain.DiscoveryRecord, error) {
	var (
		rec                    domain.DiscoveryRecord
		complexity, dataJSON   string
		startedAt, completedAt string
		submitted              int
	)
	err := s.Scan(
		&rec.ID,
		&rec.ConversationID,
		&rec.Name,
		&rec.Email,
		&complexity,
		&rec.LeadScore,
		&rec.EstimatedEffort,
		&rec.BusinessImpact,
		&submitted,
		&rec.SubmissionMessage,
		&dataJSON,
		&startedAt,
		&completedAt,
		&rec.DurationSec,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning discovery session: %w", err)
	}

	rec.Complexity = analysis.Complexity(complexity)
	rec.Submitted = intToBool(submitted)
	rec.StartedAt = parseTime(startedAt)
	rec.CompletedAt = parseTime(completedAt)

	var data analysis.EnhancedConversationData
	if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
		return nil, fmt.Errorf("decoding discovery data %s: %w", rec.ID, err)
	}
	rec.Data = &data
	return &rec, nil
}
