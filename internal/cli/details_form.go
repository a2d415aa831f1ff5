package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/djouu94/workout-tracker-v2/internal/entry"
)

// detailsFields holds form-bound values for the durations and notes form.
// Minutes stay strings until applyDetails parses them.
type detailsFields struct {
	warmupMinutes   []string
	warmupNotes     []string
	finisherMinutes string
	finisherNotes   string
	notes           string
}

func newDetailsFields(a entry.Attempt) *detailsFields {
	f := &detailsFields{
		warmupMinutes: make([]string, len(a.Warmups)),
		warmupNotes:   make([]string, len(a.Warmups)),
		notes:         a.Notes,
	}
	for i, w := range a.Warmups {
		f.warmupMinutes[i] = strconv.Itoa(w.Minutes)
		f.warmupNotes[i] = w.Notes
	}
	if a.Finisher != nil {
		f.finisherMinutes = strconv.Itoa(a.Finisher.Minutes)
		f.finisherNotes = a.Finisher.Notes
	}
	return f
}

// newDetailsForm builds one group per warm-up, one for the finisher when the
// session has one, and a last group for the session notes.
func newDetailsForm(a entry.Attempt, f *detailsFields) *huh.Form {
	var groups []*huh.Group
	for i, w := range a.Warmups {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Échauffement · %s (min)", w.Name)).
				Placeholder(strconv.Itoa(w.Minutes)).
				Value(&f.warmupMinutes[i]).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Notes").
				Placeholder("optionnel").
				Value(&f.warmupNotes[i]),
		))
	}
	if a.Finisher != nil {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Finisher · %s (min)", a.Finisher.Name)).
				Placeholder(strconv.Itoa(a.Finisher.Minutes)).
				Value(&f.finisherMinutes).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Notes").
				Placeholder("optionnel").
				Value(&f.finisherNotes),
		))
	}
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Notes de séance").
			Placeholder("optionnel").
			Value(&f.notes),
	))
	return huh.NewForm(groups...).WithTheme(muscuHuhTheme()).WithShowHelp(false)
}

func validateMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("durée en minutes, 1 ou plus")
	}
	return nil
}

// applyDetails runs the form values through the attempt setters. On any
// failure the attempt passed in is returned unchanged.
func applyDetails(a entry.Attempt, f *detailsFields) (entry.Attempt, error) {
	next := a
	var err error
	for i := range a.Warmups {
		minutes, perr := strconv.Atoi(strings.TrimSpace(f.warmupMinutes[i]))
		if perr != nil {
			return a, fmt.Errorf("durée invalide pour %s: %q", a.Warmups[i].Name, f.warmupMinutes[i])
		}
		if next, err = next.SetWarmupMinutes(i, minutes); err != nil {
			return a, err
		}
		if next, err = next.SetWarmupNotes(i, strings.TrimSpace(f.warmupNotes[i])); err != nil {
			return a, err
		}
	}
	if a.Finisher != nil {
		minutes, perr := strconv.Atoi(strings.TrimSpace(f.finisherMinutes))
		if perr != nil {
			return a, fmt.Errorf("durée invalide pour %s: %q", a.Finisher.Name, f.finisherMinutes)
		}
		if next, err = next.SetFinisherMinutes(minutes); err != nil {
			return a, err
		}
		if next, err = next.SetFinisherNotes(strings.TrimSpace(f.finisherNotes)); err != nil {
			return a, err
		}
	}
	if next, err = next.SetNotes(strings.TrimSpace(f.notes)); err != nil {
		return a, err
	}
	return next, nil
}
