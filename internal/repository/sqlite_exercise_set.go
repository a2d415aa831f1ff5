package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/djouu94/workout-tracker-v2/internal/db"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// SQLiteExerciseSetRepo implements ExerciseSetRepo using a SQLite database.
type SQLiteExerciseSetRepo struct {
	db db.DBTX
}

func NewSQLiteExerciseSetRepo(db db.DBTX) *SQLiteExerciseSetRepo {
	return &SQLiteExerciseSetRepo{db: db}
}

func (r *SQLiteExerciseSetRepo) Create(ctx context.Context, s *domain.ExerciseSet) error {
	query := `INSERT INTO exercise_sets (session_id, name, weight, reps) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, s.SessionID, s.Name, s.Weight, s.Reps); err != nil {
		return fmt.Errorf("inserting exercise set %q: %w", s.Name, err)
	}
	return nil
}

// ListBySessions groups the sets of the given sessions by session id, each
// group in insertion order.
func (r *SQLiteExerciseSetRepo) ListBySessions(ctx context.Context, sessionIDs []string) (map[string][]domain.ExerciseSet, error) {
	out := make(map[string][]domain.ExerciseSet, len(sessionIDs))
	placeholders, args := chunkIDs(sessionIDs)
	for i := range placeholders {
		query := `SELECT session_id, name, weight, reps FROM exercise_sets
			WHERE session_id IN (` + placeholders[i] + `) ORDER BY id`
		rows, err := r.db.QueryContext(ctx, query, args[i]...)
		if err != nil {
			return nil, fmt.Errorf("listing exercise sets: %w", err)
		}
		for rows.Next() {
			var s domain.ExerciseSet
			if err := rows.Scan(&s.SessionID, &s.Name, &s.Weight, &s.Reps); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning exercise set: %w", err)
			}
			out[s.SessionID] = append(out[s.SessionID], s)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("iterating exercise sets: %w", err)
		}
	}
	return out, nil
}

// MaxWeight returns the heaviest weight logged for exercise and the best reps
// at exactly that weight, or nil when the exercise has no sets.
func (r *SQLiteExerciseSetRepo) MaxWeight(ctx context.Context, exercise string) (*domain.PersonalRecord, error) {
	query := `SELECT weight, MAX(reps) FROM exercise_sets
		WHERE name = ?
		GROUP BY weight
		ORDER BY weight DESC
		LIMIT 1`
	pr := domain.PersonalRecord{Exercise: exercise}
	err := r.db.QueryRowContext(ctx, query, exercise).Scan(&pr.MaxWeight, &pr.MaxReps)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying max weight for %q: %w", exercise, err)
	}
	return &pr, nil
}

// Recent returns the latest sets joined with their session date, newest first.
func (r *SQLiteExerciseSetRepo) Recent(ctx context.Context, limit int) ([]domain.RecentSet, error) {
	query := `SELECT e.name, e.weight, e.reps, s.performed_at
		FROM exercise_sets e
		JOIN sessions s ON e.session_id = s.id
		ORDER BY s.performed_at DESC, e.id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent sets: %w", err)
	}
	defer rows.Close()

	var out []domain.RecentSet
	for rows.Next() {
		var rs domain.RecentSet
		var performedAt string
		if err := rows.Scan(&rs.Exercise, &rs.Weight, &rs.Reps, &performedAt); err != nil {
			return nil, fmt.Errorf("scanning recent set: %w", err)
		}
		if rs.SessionDate, err = parseTime(performedAt); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent sets: %w", err)
	}
	return out, nil
}
