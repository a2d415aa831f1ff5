package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
)

type recordService struct {
	sets     repository.ExerciseSetRepo
	observer UseCaseObserver
}

func NewRecordService(sets repository.ExerciseSetRepo, observers ...UseCaseObserver) RecordService {
	return &recordService{sets: sets, observer: useCaseObserverOrNoop(observers)}
}

// MaxWeightFor returns the exercise's personal record, or nil when no set
// has been logged under that exact name.
func (s *recordService) MaxWeightFor(ctx context.Context, exercise string) (pr *domain.PersonalRecord, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, UseCaseMaxWeightFor, startedAt, map[string]any{"exercise": exercise}, &err)

	if strings.TrimSpace(exercise) == "" {
		return nil, domain.Invalid("exercise", "exercise name is required")
	}
	pr, err = s.sets.MaxWeight(ctx, exercise)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuery, err)
	}
	return pr, nil
}

// RecordsFor looks up every exercise and keeps only those with a record.
func (s *recordService) RecordsFor(ctx context.Context, exercises []string) (map[string]domain.PersonalRecord, error) {
	out := make(map[string]domain.PersonalRecord, len(exercises))
	for _, name := range exercises {
		pr, err := s.MaxWeightFor(ctx, name)
		if err != nil {
			return nil, err
		}
		if pr != nil {
			out[name] = *pr
		}
	}
	return out, nil
}
