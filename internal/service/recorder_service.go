package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/db"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
	"github.com/google/uuid"
)

// RecordInput is everything needed to record one session.
type RecordInput struct {
	Type        string                `json:"type"`
	PerformedAt time.Time             `json:"performed_at"`
	Notes       string                `json:"notes,omitempty"`
	Sets        []domain.ExerciseSet  `json:"sets"`
	Warmups     []domain.WarmupEntry  `json:"warmups,omitempty"`
	Finisher    *domain.FinisherEntry `json:"finisher,omitempty"`
}

// Validate applies the entry-boundary rules. It runs before any write.
func (in RecordInput) Validate() error {
	if strings.TrimSpace(in.Type) == "" {
		return domain.Invalid("type", "session type is required")
	}
	if len(in.Sets) == 0 {
		return domain.ErrNoValidatedSets
	}
	for _, s := range in.Sets {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, w := range in.Warmups {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	if in.Finisher != nil {
		if err := in.Finisher.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type recorderService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewRecorderService(uow db.UnitOfWork, observers ...UseCaseObserver) RecorderService {
	return &recorderService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

// RecordSession inserts the session row, then its warm-ups, sets and
// finisher, in one transaction. Store failures wrap domain.ErrPersistence.
func (s *recorderService) RecordSession(ctx context.Context, in RecordInput) (id string, err error) {
	startedAt := time.Now()
	fields := map[string]any{"type": in.Type, "sets": len(in.Sets)}
	defer observe(ctx, s.observer, UseCaseRecordSession, startedAt, fields, &err)

	if err = in.Validate(); err != nil {
		return "", err
	}

	session := &domain.Session{
		ID:          uuid.New().String(),
		PerformedAt: in.PerformedAt,
		Type:        strings.TrimSpace(in.Type),
		Notes:       in.Notes,
	}
	if session.PerformedAt.IsZero() {
		session.PerformedAt = s.now()
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSessionRepo(tx).Create(ctx, session); err != nil {
			return err
		}
		warmups := repository.NewSQLiteWarmupRepo(tx)
		for _, w := range in.Warmups {
			w.SessionID = session.ID
			if err := warmups.Create(ctx, &w); err != nil {
				return err
			}
		}
		sets := repository.NewSQLiteExerciseSetRepo(tx)
		for _, set := range in.Sets {
			set.SessionID = session.ID
			if err := sets.Create(ctx, &set); err != nil {
				return err
			}
		}
		if in.Finisher != nil {
			f := *in.Finisher
			f.SessionID = session.ID
			if err := repository.NewSQLiteFinisherRepo(tx).Create(ctx, &f); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("recording session: %w: %w", domain.ErrPersistence, err)
	}
	fields["session_id"] = session.ID
	return session.ID, nil
}
