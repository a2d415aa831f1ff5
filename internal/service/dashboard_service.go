package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
)

// DefaultRecentLimit is the number of recent sets shown on the home screen.
const DefaultRecentLimit = 10

// Overview is the home-screen summary. Read failures leave the affected part
// at its zero value and add a warning.
type Overview struct {
	Stats    domain.Stats       `json:"stats"`
	Recent   []domain.RecentSet `json:"recent"`
	Warnings []string           `json:"warnings,omitempty"`
}

type dashboardService struct {
	stats    repository.StatsRepo
	sets     repository.ExerciseSetRepo
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewDashboardService(
	stats repository.StatsRepo,
	sets repository.ExerciseSetRepo,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &dashboardService{
		stats:    stats,
		sets:     sets,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dashboardService) Overview(ctx context.Context, recentLimit int) Overview {
	startedAt := time.Now()
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	out := Overview{Recent: []domain.RecentSet{}}

	var firstErr error
	stats, err := s.stats.Aggregate(ctx)
	if err != nil {
		firstErr = err
		s.logger.WarnContext(ctx, "stats unavailable", "error", err)
		out.Warnings = append(out.Warnings, "Statistiques indisponibles: "+err.Error())
	} else {
		out.Stats = stats
	}

	recent, err := s.sets.Recent(ctx, recentLimit)
	if err != nil {
		if firstErr == nil {
			firstErr = err
		}
		s.logger.WarnContext(ctx, "recent sets unavailable", "error", err)
		out.Warnings = append(out.Warnings, "Séries récentes indisponibles: "+err.Error())
	} else if recent != nil {
		out.Recent = recent
	}

	observe(ctx, s.observer, UseCaseDashboard, startedAt,
		map[string]any{"recent_limit": recentLimit, "warnings": len(out.Warnings)}, &firstErr)
	return out
}
