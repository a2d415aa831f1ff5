package domain

import (
	"fmt"
	"strconv"
	"time"
)

// SessionView is a session with its child rows, ready for display.
// The Display* slices hold one formatted line per child row.
type SessionView struct {
	Session
	Warmups   []WarmupEntry   `json:"warmups"`
	Sets      []ExerciseSet   `json:"sets"`
	Finishers []FinisherEntry `json:"finishers"`

	DisplayWarmups   []string `json:"display_warmups"`
	DisplaySets      []string `json:"display_sets"`
	DisplayFinishers []string `json:"display_finishers"`
}

// PersonalRecord is the heaviest logged weight for an exercise and the best
// reps achieved at exactly that weight.
type PersonalRecord struct {
	Exercise  string  `json:"exercise"`
	MaxWeight float64 `json:"max_weight"`
	MaxReps   int     `json:"max_reps_at_max_weight"`
}

// Stats holds the whole-history aggregates shown on the home screen.
type Stats struct {
	TotalSessions     int     `json:"total_sessions"`
	TotalExerciseSets int     `json:"total_exercise_sets"`
	MaxWeightOverall  float64 `json:"max_weight_overall"`
}

// RecentSet is one exercise set joined with the date of its session.
type RecentSet struct {
	Exercise    string    `json:"exercise"`
	Weight      float64   `json:"weight"`
	Reps        int       `json:"reps"`
	SessionDate time.Time `json:"session_date"`
}

// FormatWeight renders kilos without trailing zeros ("25", "22.5").
func FormatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}

// Label renders a set as "Pec deck (25 kg × 8)".
func (s ExerciseSet) Label() string {
	return fmt.Sprintf("%s (%s kg × %d)", s.Name, FormatWeight(s.Weight), s.Reps)
}

// Label renders a warm-up as "Tapis (5 min)", or the bare activity without a duration.
func (w WarmupEntry) Label() string {
	if w.Minutes == nil {
		return w.Activity
	}
	return fmt.Sprintf("%s (%d min)", w.Activity, *w.Minutes)
}

// Label renders a finisher as "Tapis (20 min)".
func (f FinisherEntry) Label() string {
	return fmt.Sprintf("%s (%d min)", f.Activity, f.Minutes)
}

// Label renders a record as "25 kg × 12 reps".
func (p PersonalRecord) Label() string {
	return fmt.Sprintf("%s kg × %d reps", FormatWeight(p.MaxWeight), p.MaxReps)
}
