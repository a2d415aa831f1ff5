package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML layout.
type catalogFile struct {
	Programs []programSpec `yaml:"programs"`
}

type programSpec struct {
	Type      string         `yaml:"type"`
	Kind      Kind           `yaml:"kind"`
	Warmups   []activitySpec `yaml:"warmups"`
	Exercises []exerciseSpec `yaml:"exercises"`
	Finisher  activitySpec   `yaml:"finisher"`
}

// exerciseSpec accepts either "Pec deck - 2 séries" or {name: Pec deck, sets: 2}.
type exerciseSpec struct {
	Exercise
}

func (e *exerciseSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		ex, err := ParseExercise(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		e.Exercise = ex
		return nil
	}
	var raw struct {
		Name string `yaml:"name"`
		Sets int    `yaml:"sets"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw.Name) == "" {
		return fmt.Errorf("line %d: exercise name is required", node.Line)
	}
	if raw.Sets < 1 {
		return fmt.Errorf("line %d: %s: sets must be >= 1", node.Line, raw.Name)
	}
	e.Exercise = Exercise{Name: raw.Name, Sets: raw.Sets}
	return nil
}

// activitySpec accepts either "Tapis (20 min de marche)" or {name: Tapis, minutes: 20}.
type activitySpec struct {
	label   string
	name    string
	minutes int
}

func (a *activitySpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		a.label = strings.TrimSpace(node.Value)
		a.name, a.minutes = splitDuration(a.label)
		return nil
	}
	var raw struct {
		Name    string `yaml:"name"`
		Minutes int    `yaml:"minutes"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	a.name = strings.TrimSpace(raw.Name)
	a.minutes = raw.Minutes
	a.label = a.name
	if raw.Minutes > 0 {
		a.label = fmt.Sprintf("%s (%d min)", a.name, raw.Minutes)
	}
	return nil
}

func (a activitySpec) activity(fallbackMinutes int) Activity {
	minutes := a.minutes
	if minutes < 1 {
		minutes = fallbackMinutes
	}
	return Activity{Name: a.name, Label: a.label, DefaultMinutes: minutes}
}

// ParseExercise parses the "<name> - <N> séries" descriptor.
func ParseExercise(s string) (Exercise, error) {
	idx := strings.LastIndex(s, " - ")
	if idx < 0 {
		return Exercise{}, fmt.Errorf("exercise %q: missing \" - <N> séries\" suffix", s)
	}
	name := strings.TrimSpace(s[:idx])
	fields := strings.Fields(s[idx+3:])
	if name == "" || len(fields) == 0 {
		return Exercise{}, fmt.Errorf("exercise %q: malformed descriptor", s)
	}
	sets, err := strconv.Atoi(fields[0])
	if err != nil {
		return Exercise{}, fmt.Errorf("exercise %q: set count: %w", s, err)
	}
	if sets < 1 {
		return Exercise{}, fmt.Errorf("exercise %q: set count must be >= 1", s)
	}
	return Exercise{Name: name, Sets: sets}, nil
}

// splitDuration extracts "(N min ...)" from an activity descriptor. Without a
// leading integer inside the parentheses the whole text is the name.
func splitDuration(s string) (string, int) {
	open := strings.Index(s, "(")
	if open < 0 {
		return s, 0
	}
	inner := strings.TrimSuffix(s[open+1:], ")")
	fields := strings.Fields(inner)
	if len(fields) == 0 {
		return s, 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return s, 0
	}
	return strings.TrimSpace(s[:open]), n
}
