package repository

import (
	"context"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/domain"
)

// SessionFilter narrows session listings. Filters compose by AND; zero
// values disable them.
type SessionFilter struct {
	Since *time.Time
	Type  string
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context, f SessionFilter) ([]*domain.Session, error)
}

type ExerciseSetRepo interface {
	Create(ctx context.Context, s *domain.ExerciseSet) error
	ListBySessions(ctx context.Context, sessionIDs []string) (map[string][]domain.ExerciseSet, error)
	MaxWeight(ctx context.Context, exercise string) (*domain.PersonalRecord, error)
	Recent(ctx context.Context, limit int) ([]domain.RecentSet, error)
}

type WarmupRepo interface {
	Create(ctx context.Context, w *domain.WarmupEntry) error
	ListBySessions(ctx context.Context, sessionIDs []string) (map[string][]domain.WarmupEntry, error)
}

type FinisherRepo interface {
	Create(ctx context.Context, f *domain.FinisherEntry) error
	ListBySessions(ctx context.Context, sessionIDs []string) (map[string][]domain.FinisherEntry, error)
}

type StatsRepo interface {
	Aggregate(ctx context.Context) (domain.Stats, error)
}

// SchemaRepo backs the read-only inspection surfaces.
type SchemaRepo interface {
	Describe(ctx context.Context) ([]TableInfo, error)
	Dump(ctx context.Context, table string, limit int) (*TableDump, error)
}
