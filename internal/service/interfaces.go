package service

import (
	"context"

	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// RecorderService writes a session and its child rows atomically.
type RecorderService interface {
	RecordSession(ctx context.Context, in RecordInput) (string, error)
}

type HistoryService interface {
	ListSessions(ctx context.Context, f HistoryFilter) ([]domain.SessionView, error)
	GetSession(ctx context.Context, id string) (*domain.SessionView, error)
}

type RecordService interface {
	MaxWeightFor(ctx context.Context, exercise string) (*domain.PersonalRecord, error)
	RecordsFor(ctx context.Context, exercises []string) (map[string]domain.PersonalRecord, error)
}

// DashboardService never fails; read errors become Warnings on the Overview.
type DashboardService interface {
	Overview(ctx context.Context, recentLimit int) Overview
}
