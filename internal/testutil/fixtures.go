package testutil

import (
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/google/uuid"
)

// Session options
type SessionOption func(*domain.Session)

func WithPerformedAt(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.PerformedAt = t.UTC().Truncate(time.Second)
	}
}

func WithDaysAgo(days int) SessionOption {
	return func(s *domain.Session) {
		s.PerformedAt = time.Now().UTC().AddDate(0, 0, -days).Truncate(time.Second)
	}
}

func WithNotes(notes string) SessionOption {
	return func(s *domain.Session) {
		s.Notes = notes
	}
}

func NewTestSession(sessionType string, opts ...SessionOption) *domain.Session {
	s := &domain.Session{
		ID:          uuid.New().String(),
		PerformedAt: time.Now().UTC().Truncate(time.Second),
		Type:        sessionType,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestSet(sessionID, name string, weight float64, reps int) *domain.ExerciseSet {
	return &domain.ExerciseSet{SessionID: sessionID, Name: name, Weight: weight, Reps: reps}
}

func NewTestWarmup(sessionID, activity string, minutes int) *domain.WarmupEntry {
	w := &domain.WarmupEntry{SessionID: sessionID, Activity: activity}
	if minutes > 0 {
		w.Minutes = &minutes
	}
	return w
}

func NewTestFinisher(sessionID, activity string, minutes int) *domain.FinisherEntry {
	return &domain.FinisherEntry{SessionID: sessionID, Activity: activity, Minutes: minutes}
}
