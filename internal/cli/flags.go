package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/spf13/pflag"
)

// setListValue collects repeated --set "Name:25x8" flags.
type setListValue struct {
	sets []domain.ExerciseSet
}

var _ pflag.Value = (*setListValue)(nil)

func (v *setListValue) String() string {
	labels := make([]string, len(v.sets))
	for i, s := range v.sets {
		labels[i] = s.Label()
	}
	return strings.Join(labels, ", ")
}

func (v *setListValue) Set(raw string) error {
	s, err := parseSetFlag(raw)
	if err != nil {
		return err
	}
	v.sets = append(v.sets, s)
	return nil
}

func (v *setListValue) Type() string { return "name:KGxREPS" }

// warmupListValue collects repeated --warmup "Tapis:5" flags. The duration
// is optional.
type warmupListValue struct {
	warmups []domain.WarmupEntry
}

var _ pflag.Value = (*warmupListValue)(nil)

func (v *warmupListValue) String() string {
	labels := make([]string, len(v.warmups))
	for i, w := range v.warmups {
		labels[i] = w.Label()
	}
	return strings.Join(labels, ", ")
}

func (v *warmupListValue) Set(raw string) error {
	name, minutes, err := parseActivityFlag(raw)
	if err != nil {
		return err
	}
	w := domain.WarmupEntry{Activity: name}
	if minutes > 0 {
		w.Minutes = &minutes
	}
	v.warmups = append(v.warmups, w)
	return nil
}

func (v *warmupListValue) Type() string { return "name[:MIN]" }

// parseSetFlag parses "Pec deck:25x8". The weight accepts a decimal comma
// and the separator may be x or ×.
func parseSetFlag(raw string) (domain.ExerciseSet, error) {
	idx := strings.LastIndex(raw, ":")
	if idx < 0 {
		return domain.ExerciseSet{}, fmt.Errorf("set %q: expected NAME:KGxREPS", raw)
	}
	name := strings.TrimSpace(raw[:idx])
	spec := strings.ReplaceAll(strings.TrimSpace(raw[idx+1:]), "×", "x")
	weightStr, repsStr, ok := strings.Cut(strings.ToLower(spec), "x")
	if name == "" || !ok {
		return domain.ExerciseSet{}, fmt.Errorf("set %q: expected NAME:KGxREPS", raw)
	}
	weight, err := parseWeight(weightStr)
	if err != nil {
		return domain.ExerciseSet{}, fmt.Errorf("set %q: weight: %w", raw, err)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(repsStr))
	if err != nil {
		return domain.ExerciseSet{}, fmt.Errorf("set %q: reps: %w", raw, err)
	}
	return domain.ExerciseSet{Name: name, Weight: weight, Reps: reps}, nil
}

// parseActivityFlag parses "Tapis:20" or a bare "Élastique".
func parseActivityFlag(raw string) (string, int, error) {
	name, minutesStr, hasMinutes := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, fmt.Errorf("activity %q: name is required", raw)
	}
	if !hasMinutes {
		return name, 0, nil
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(minutesStr))
	if err != nil {
		return "", 0, fmt.Errorf("activity %q: minutes: %w", raw, err)
	}
	return name, minutes, nil
}

func parseWeight(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseReps(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
