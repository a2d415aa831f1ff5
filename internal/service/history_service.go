package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
)

// HistoryFilter selects sessions. Days <= 0 disables the time window; an
// empty Type or catalog.AllTypes disables the type match. Distinct collapses
// child rows whose display text is identical within one session.
type HistoryFilter struct {
	Days     int    `json:"days,omitempty"`
	Type     string `json:"type,omitempty"`
	Distinct bool   `json:"distinct,omitempty"`
}

type historyService struct {
	sessions  repository.SessionRepo
	sets      repository.ExerciseSetRepo
	warmups   repository.WarmupRepo
	finishers repository.FinisherRepo
	observer  UseCaseObserver
	now       func() time.Time
}

func NewHistoryService(
	sessions repository.SessionRepo,
	sets repository.ExerciseSetRepo,
	warmups repository.WarmupRepo,
	finishers repository.FinisherRepo,
	observers ...UseCaseObserver,
) HistoryService {
	return &historyService{
		sessions:  sessions,
		sets:      sets,
		warmups:   warmups,
		finishers: finishers,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *historyService) ListSessions(ctx context.Context, f HistoryFilter) (views []domain.SessionView, err error) {
	startedAt := time.Now()
	fields := map[string]any{"days": f.Days, "type": f.Type, "distinct": f.Distinct}
	defer observe(ctx, s.observer, UseCaseListSessions, startedAt, fields, &err)

	var filter repository.SessionFilter
	if f.Days > 0 {
		since := s.now().AddDate(0, 0, -f.Days)
		filter.Since = &since
	}
	if f.Type != catalog.AllTypes {
		filter.Type = f.Type
	}

	sessions, err := s.sessions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuery, err)
	}
	views, err = s.assemble(ctx, sessions, f.Distinct)
	if err != nil {
		return nil, err
	}
	fields["sessions"] = len(views)
	return views, nil
}

func (s *historyService) GetSession(ctx context.Context, id string) (view *domain.SessionView, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, UseCaseGetSession, startedAt, map[string]any{"session_id": id}, &err)

	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrQuery, err)
	}
	views, err := s.assemble(ctx, []*domain.Session{session}, false)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// assemble loads the child rows of sessions in three queries and groups them
// per session, keeping the session order.
func (s *historyService) assemble(ctx context.Context, sessions []*domain.Session, distinct bool) ([]domain.SessionView, error) {
	ids := make([]string, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}

	warmups, err := s.warmups.ListBySessions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuery, err)
	}
	sets, err := s.sets.ListBySessions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuery, err)
	}
	finishers, err := s.finishers.ListBySessions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuery, err)
	}

	views := make([]domain.SessionView, len(sessions))
	for i, sess := range sessions {
		v := domain.SessionView{Session: *sess}
		v.Warmups, v.DisplayWarmups = collect(warmups[sess.ID], distinct)
		v.Sets, v.DisplaySets = collect(sets[sess.ID], distinct)
		v.Finishers, v.DisplayFinishers = collect(finishers[sess.ID], distinct)
		views[i] = v
	}
	return views, nil
}

type labeled interface {
	Label() string
}

// collect returns rows with their display labels. Both slices are non-nil so
// sessions without children encode as empty lists.
func collect[T labeled](rows []T, distinct bool) ([]T, []string) {
	kept := make([]T, 0, len(rows))
	labels := make([]string, 0, len(rows))
	seen := make(map[string]bool)
	for _, r := range rows {
		label := r.Label()
		if distinct {
			if seen[label] {
				continue
			}
			seen[label] = true
		}
		kept = append(kept, r)
		labels = append(labels, label)
	}
	return kept, labels
}
