// Package entry holds the state of one session being entered, from "start"
// until it is saved or abandoned.
//
// An Attempt is a plain value. Every operation returns a new Attempt and
// leaves its receiver untouched, so a host can keep the previous value when
// an operation fails and can ship the value to a client and back as JSON.
package entry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/service"
)

// ErrNoAttempt is returned by mutations on an idle attempt.
var ErrNoAttempt = errors.New("no session in progress")

// Slot is one set index of an exercise. Captured marks an explicitly
// confirmed value; unconfirmed slots are never recorded.
type Slot struct {
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
	Captured bool    `json:"captured"`
}

// ExerciseState tracks the target set count and the slots filled so far.
// len(Slots) never exceeds TargetSets.
type ExerciseState struct {
	Name       string `json:"name"`
	TargetSets int    `json:"target_sets"`
	Slots      []Slot `json:"slots"`
}

// ActivityState is a warm-up or finisher with the duration the user kept.
type ActivityState struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
	Notes   string `json:"notes,omitempty"`
}

// Attempt is the in-progress entry for one session. The zero value is idle.
type Attempt struct {
	Active    bool            `json:"active"`
	Type      string          `json:"type,omitempty"`
	Kind      catalog.Kind    `json:"kind,omitempty"`
	StartedAt time.Time       `json:"started_at,omitzero"`
	Notes     string          `json:"notes,omitempty"`
	Warmups   []ActivityState `json:"warmups,omitempty"`
	Exercises []ExerciseState `json:"exercises,omitempty"`
	Finisher  *ActivityState  `json:"finisher,omitempty"`
}

// Recorder persists a finished attempt. service.RecorderService satisfies it.
type Recorder interface {
	RecordSession(ctx context.Context, in service.RecordInput) (string, error)
}

// Start snapshots program into a fresh attempt. Set counts come from the
// catalog and no set is captured yet.
func Start(p catalog.Program) Attempt {
	a := Attempt{
		Active:    true,
		Type:      p.Type,
		Kind:      p.Kind,
		StartedAt: time.Now().UTC(),
	}
	for _, w := range p.Warmups {
		a.Warmups = append(a.Warmups, ActivityState{Name: w.Name, Label: w.Label, Minutes: w.DefaultMinutes})
	}
	for _, e := range p.Exercises {
		a.Exercises = append(a.Exercises, ExerciseState{Name: e.Name, TargetSets: e.Sets})
	}
	if p.Finisher.Name != "" {
		a.Finisher = &ActivityState{Name: p.Finisher.Name, Label: p.Finisher.Label, Minutes: p.Finisher.DefaultMinutes}
	}
	return a
}

// AddExercise appends an exercise with a single set, for free-form sessions.
// Adding a name already present is a no-op.
func (a Attempt) AddExercise(name string) (Attempt, error) {
	if err := a.ready(); err != nil {
		return a, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return a, domain.Invalid("exercise", "exercise name is required")
	}
	if a.find(name) >= 0 {
		return a, nil
	}
	next := a.clone()
	next.Exercises = append(next.Exercises, ExerciseState{Name: name, TargetSets: 1})
	return next, nil
}

// AddSet raises the target set count of exercise by one.
func (a Attempt) AddSet(exercise string) (Attempt, error) {
	i, err := a.lookup(exercise)
	if err != nil {
		return a, err
	}
	next := a.clone()
	next.Exercises[i].TargetSets++
	return next, nil
}

// RemoveSet lowers the target set count by one, never below 1. Slots past
// the new count are dropped.
func (a Attempt) RemoveSet(exercise string) (Attempt, error) {
	i, err := a.lookup(exercise)
	if err != nil {
		return a, err
	}
	if a.Exercises[i].TargetSets <= 1 {
		return a, nil
	}
	next := a.clone()
	ex := &next.Exercises[i]
	ex.TargetSets--
	if len(ex.Slots) > ex.TargetSets {
		ex.Slots = ex.Slots[:ex.TargetSets]
	}
	return next, nil
}

// CaptureSet confirms weight × reps for the set at index (0-based). The set
// is captured only when both values are above zero; otherwise the attempt is
// returned unchanged with captured false.
func (a Attempt) CaptureSet(exercise string, index int, weight float64, reps int) (next Attempt, captured bool, err error) {
	i, err := a.lookup(exercise)
	if err != nil {
		return a, false, err
	}
	ex := a.Exercises[i]
	if index < 0 || index >= ex.TargetSets {
		return a, false, domain.Invalid("sets.index", "%s: set %d out of range 1..%d", ex.Name, index+1, ex.TargetSets)
	}
	if err := (domain.ExerciseSet{Name: ex.Name, Weight: weight, Reps: reps}).Validate(); err != nil {
		return a, false, err
	}
	if weight <= 0 || reps <= 0 {
		return a, false, nil
	}

	next = a.clone()
	slots := next.Exercises[i].Slots
	for len(slots) <= index {
		slots = append(slots, Slot{})
	}
	slots[index] = Slot{Weight: weight, Reps: reps, Captured: true}
	next.Exercises[i].Slots = slots
	return next, true, nil
}

// SetWarmupMinutes changes the duration of the warm-up at index.
func (a Attempt) SetWarmupMinutes(index, minutes int) (Attempt, error) {
	if err := a.checkWarmup(index); err != nil {
		return a, err
	}
	if minutes < 1 {
		return a, domain.Invalid("warmups.minutes", "%s: duration must be >= 1 minute, got %d", a.Warmups[index].Name, minutes)
	}
	next := a.clone()
	next.Warmups[index].Minutes = minutes
	return next, nil
}

func (a Attempt) SetWarmupNotes(index int, notes string) (Attempt, error) {
	if err := a.checkWarmup(index); err != nil {
		return a, err
	}
	next := a.clone()
	next.Warmups[index].Notes = notes
	return next, nil
}

func (a Attempt) SetFinisherMinutes(minutes int) (Attempt, error) {
	if err := a.checkFinisher(); err != nil {
		return a, err
	}
	if minutes < 1 {
		return a, domain.Invalid("finisher.minutes", "%s: duration must be >= 1 minute, got %d", a.Finisher.Name, minutes)
	}
	next := a.clone()
	next.Finisher.Minutes = minutes
	return next, nil
}

func (a Attempt) SetFinisherNotes(notes string) (Attempt, error) {
	if err := a.checkFinisher(); err != nil {
		return a, err
	}
	next := a.clone()
	next.Finisher.Notes = notes
	return next, nil
}

func (a Attempt) SetNotes(notes string) (Attempt, error) {
	if err := a.ready(); err != nil {
		return a, err
	}
	next := a.clone()
	next.Notes = notes
	return next, nil
}

// ValidatedSets lists captured sets in exercise order, then set order.
func (a Attempt) ValidatedSets() []domain.ExerciseSet {
	var sets []domain.ExerciseSet
	for _, ex := range a.Exercises {
		for _, s := range ex.Slots {
			if s.Captured {
				sets = append(sets, domain.ExerciseSet{Name: ex.Name, Weight: s.Weight, Reps: s.Reps})
			}
		}
	}
	return sets
}

// Progress reports captured sets against the total target.
func (a Attempt) Progress() (captured, target int) {
	for _, ex := range a.Exercises {
		target += ex.TargetSets
		for _, s := range ex.Slots {
			if s.Captured {
				captured++
			}
		}
	}
	return captured, target
}

// RecordInput converts the attempt into a recorder request.
func (a Attempt) RecordInput() service.RecordInput {
	in := service.RecordInput{
		Type:  a.Type,
		Notes: a.Notes,
		Sets:  a.ValidatedSets(),
	}
	for _, w := range a.Warmups {
		minutes := w.Minutes
		in.Warmups = append(in.Warmups, domain.WarmupEntry{Activity: w.Name, Minutes: &minutes, Notes: w.Notes})
	}
	if a.Finisher != nil {
		in.Finisher = &domain.FinisherEntry{Activity: a.Finisher.Name, Minutes: a.Finisher.Minutes, Notes: a.Finisher.Notes}
	}
	return in
}

// Save records the attempt. On success it returns the idle attempt and the
// new session id; on any failure it returns a unchanged so the user can retry.
func Save(ctx context.Context, rec Recorder, a Attempt) (Attempt, string, error) {
	if err := a.ready(); err != nil {
		return a, "", err
	}
	id, err := rec.RecordSession(ctx, a.RecordInput())
	if err != nil {
		return a, "", err
	}
	return Attempt{}, id, nil
}

// Validate checks the rules every operation keeps: at least one target set
// per exercise, no more slots than target sets, captured slots with weight
// and reps above zero, and activity durations of at least one minute. An
// attempt handed back by a client is checked before it is used.
func (a Attempt) Validate() error {
	if !a.Active {
		return nil
	}
	if strings.TrimSpace(a.Type) == "" {
		return domain.Invalid("type", "session type is required")
	}
	for _, ex := range a.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return domain.Invalid("exercise", "exercise name is required")
		}
		if ex.TargetSets < 1 {
			return domain.Invalid("sets.target", "%s: target sets must be >= 1, got %d", ex.Name, ex.TargetSets)
		}
		if len(ex.Slots) > ex.TargetSets {
			return domain.Invalid("sets.index", "%s: %d sets entered for %d target sets", ex.Name, len(ex.Slots), ex.TargetSets)
		}
		for i, s := range ex.Slots {
			if s.Captured && !(s.Weight > 0 && s.Reps > 0) {
				return domain.Invalid("sets", "%s: set %d is captured without weight and reps", ex.Name, i+1)
			}
		}
	}
	for _, w := range a.Warmups {
		if w.Minutes < 1 {
			return domain.Invalid("warmups.minutes", "%s: duration must be >= 1 minute, got %d", w.Name, w.Minutes)
		}
	}
	if a.Finisher != nil && a.Finisher.Minutes < 1 {
		return domain.Invalid("finisher.minutes", "%s: duration must be >= 1 minute, got %d", a.Finisher.Name, a.Finisher.Minutes)
	}
	return nil
}

func (a Attempt) ready() error {
	if !a.Active {
		return ErrNoAttempt
	}
	return a.Validate()
}

func (a Attempt) find(name string) int {
	for i, ex := range a.Exercises {
		if ex.Name == name {
			return i
		}
	}
	return -1
}

func (a Attempt) lookup(exercise string) (int, error) {
	if err := a.ready(); err != nil {
		return -1, err
	}
	i := a.find(exercise)
	if i < 0 {
		return -1, domain.Invalid("exercise", "%q is not part of %s", exercise, a.Type)
	}
	return i, nil
}

func (a Attempt) checkWarmup(index int) error {
	if err := a.ready(); err != nil {
		return err
	}
	if index < 0 || index >= len(a.Warmups) {
		return domain.Invalid("warmups.index", "warm-up %d out of range", index+1)
	}
	return nil
}

func (a Attempt) checkFinisher() error {
	if err := a.ready(); err != nil {
		return err
	}
	if a.Finisher == nil {
		return domain.Invalid("finisher", "%s has no finisher", a.Type)
	}
	return nil
}

func (a Attempt) clone() Attempt {
	next := a
	next.Warmups = append([]ActivityState(nil), a.Warmups...)
	next.Exercises = make([]ExerciseState, len(a.Exercises))
	for i, ex := range a.Exercises {
		ex.Slots = append([]Slot(nil), ex.Slots...)
		next.Exercises[i] = ex
	}
	if a.Finisher != nil {
		f := *a.Finisher
		next.Finisher = &f
	}
	return next
}
