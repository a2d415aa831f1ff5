package domain

import "time"

// Session is one recorded workout. It is written once, together with its
// child rows, and never updated.
type Session struct {
	ID          string    `json:"id"`
	PerformedAt time.Time `json:"performed_at"`
	Type        string    `json:"type"`
	Notes       string    `json:"notes,omitempty"`
}

// ExerciseSet is one (weight × reps) pair for a named exercise.
type ExerciseSet struct {
	SessionID string  `json:"session_id,omitempty"`
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
}

// WarmupEntry is a warm-up activity. Minutes is nil when no duration was given.
type WarmupEntry struct {
	SessionID string `json:"session_id,omitempty"`
	Activity  string `json:"activity"`
	Minutes   *int   `json:"minutes,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// FinisherEntry is the closing activity of a session.
type FinisherEntry struct {
	SessionID string `json:"session_id,omitempty"`
	Activity  string `json:"activity"`
	Minutes   int    `json:"minutes"`
	Notes     string `json:"notes,omitempty"`
}
