package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/djouu94/workout-tracker-v2/internal/db"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (id, performed_at, type, notes) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.ID, formatTime(s.PerformedAt), s.Type, s.Notes)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT id, performed_at, type, notes FROM sessions WHERE id = ?`
	var s domain.Session
	var performedAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &performedAt, &s.Type, &s.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if s.PerformedAt, err = parseTime(performedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns sessions newest first. Ties on performed_at fall back to
// insertion order, latest first.
func (r *SQLiteSessionRepo) List(ctx context.Context, f SessionFilter) ([]*domain.Session, error) {
	var where []string
	var args []any
	if f.Since != nil {
		where = append(where, "performed_at >= ?")
		args = append(args, formatTime(*f.Since))
	}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, f.Type)
	}

	query := `SELECT id, performed_at, type, notes FROM sessions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY performed_at DESC, rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		var performedAt string
		if err := rows.Scan(&s.ID, &performedAt, &s.Type, &s.Notes); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		if s.PerformedAt, err = parseTime(performedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}
