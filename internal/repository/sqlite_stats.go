package repository

import (
	"context"
	"fmt"

	"github.com/djouu94/workout-tracker-v2/internal/db"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// SQLiteStatsRepo computes whole-history aggregates.
type SQLiteStatsRepo struct {
	db db.DBTX
}

func NewSQLiteStatsRepo(db db.DBTX) *SQLiteStatsRepo {
	return &SQLiteStatsRepo{db: db}
}

func (r *SQLiteStatsRepo) Aggregate(ctx context.Context) (domain.Stats, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM sessions),
		(SELECT COUNT(*) FROM exercise_sets),
		(SELECT COALESCE(MAX(weight), 0.0) FROM exercise_sets)`
	var st domain.Stats
	if err := r.db.QueryRowContext(ctx, query).Scan(&st.TotalSessions, &st.TotalExerciseSets, &st.MaxWeightOverall); err != nil {
		return domain.Stats{}, fmt.Errorf("aggregating stats: %w", err)
	}
	return st, nil
}
