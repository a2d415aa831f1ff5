package domain

import (
	"math"
	"strings"
)

// Validate checks the entry-boundary range rules for a set.
func (s ExerciseSet) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return Invalid("sets.name", "exercise name is required")
	}
	if math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) || s.Weight < 0 {
		return Invalid("sets.weight", "%s: weight must be >= 0, got %v", s.Name, s.Weight)
	}
	if s.Reps < 0 {
		return Invalid("sets.reps", "%s: reps must be >= 0, got %d", s.Name, s.Reps)
	}
	return nil
}

// Validate checks a warm-up entry; a duration, when present, is at least one minute.
func (w WarmupEntry) Validate() error {
	if strings.TrimSpace(w.Activity) == "" {
		return Invalid("warmups.activity", "activity name is required")
	}
	if w.Minutes != nil && *w.Minutes < 1 {
		return Invalid("warmups.minutes", "%s: duration must be >= 1 minute, got %d", w.Activity, *w.Minutes)
	}
	return nil
}

// Validate checks a finisher entry.
func (f FinisherEntry) Validate() error {
	if strings.TrimSpace(f.Activity) == "" {
		return Invalid("finisher.activity", "activity name is required")
	}
	if f.Minutes < 1 {
		return Invalid("finisher.minutes", "%s: duration must be >= 1 minute, got %d", f.Activity, f.Minutes)
	}
	return nil
}
