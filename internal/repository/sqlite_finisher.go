package repository

import (
	"context"
	"fmt"

	"github.com/djouu94/workout-tracker-v2/internal/db"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// SQLiteFinisherRepo implements FinisherRepo using a SQLite database.
type SQLiteFinisherRepo struct {
	db db.DBTX
}

func NewSQLiteFinisherRepo(db db.DBTX) *SQLiteFinisherRepo {
	return &SQLiteFinisherRepo{db: db}
}

func (r *SQLiteFinisherRepo) Create(ctx context.Context, f *domain.FinisherEntry) error {
	query := `INSERT INTO finishers (session_id, activity, duration_min, notes) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, f.SessionID, f.Activity, f.Minutes, f.Notes); err != nil {
		return fmt.Errorf("inserting finisher %q: %w", f.Activity, err)
	}
	return nil
}

func (r *SQLiteFinisherRepo) ListBySessions(ctx context.Context, sessionIDs []string) (map[string][]domain.FinisherEntry, error) {
	out := make(map[string][]domain.FinisherEntry, len(sessionIDs))
	placeholders, args := chunkIDs(sessionIDs)
	for i := range placeholders {
		query := `SELECT session_id, activity, duration_min, notes FROM finishers
			WHERE session_id IN (` + placeholders[i] + `) ORDER BY id`
		rows, err := r.db.QueryContext(ctx, query, args[i]...)
		if err != nil {
			return nil, fmt.Errorf("listing finishers: %w", err)
		}
		for rows.Next() {
			var f domain.FinisherEntry
			if err := rows.Scan(&f.SessionID, &f.Activity, &f.Minutes, &f.Notes); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning finisher: %w", err)
			}
			out[f.SessionID] = append(out[f.SessionID], f)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("iterating finishers: %w", err)
		}
	}
	return out, nil
}
