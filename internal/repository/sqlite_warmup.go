package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/djouu94/workout-tracker-v2/internal/db"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// SQLiteWarmupRepo implements WarmupRepo using a SQLite database.
type SQLiteWarmupRepo struct {
	db db.DBTX
}

func NewSQLiteWarmupRepo(db db.DBTX) *SQLiteWarmupRepo {
	return &SQLiteWarmupRepo{db: db}
}

func (r *SQLiteWarmupRepo) Create(ctx context.Context, w *domain.WarmupEntry) error {
	query := `INSERT INTO warmups (session_id, activity, duration_min, notes) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, w.SessionID, w.Activity, nullableIntToValue(w.Minutes), w.Notes)
	if err != nil {
		return fmt.Errorf("inserting warm-up %q: %w", w.Activity, err)
	}
	return nil
}

func (r *SQLiteWarmupRepo) ListBySessions(ctx context.Context, sessionIDs []string) (map[string][]domain.WarmupEntry, error) {
	out := make(map[string][]domain.WarmupEntry, len(sessionIDs))
	placeholders, args := chunkIDs(sessionIDs)
	for i := range placeholders {
		query := `SELECT session_id, activity, duration_min, notes FROM warmups
			WHERE session_id IN (` + placeholders[i] + `) ORDER BY id`
		rows, err := r.db.QueryContext(ctx, query, args[i]...)
		if err != nil {
			return nil, fmt.Errorf("listing warm-ups: %w", err)
		}
		for rows.Next() {
			var w domain.WarmupEntry
			var minutes sql.NullInt64
			if err := rows.Scan(&w.SessionID, &w.Activity, &minutes, &w.Notes); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning warm-up: %w", err)
			}
			w.Minutes = nullIntToPtr(minutes)
			out[w.SessionID] = append(out[w.SessionID], w)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("iterating warm-ups: %w", err)
		}
	}
	return out, nil
}
