// Package catalog holds the static training programs a session is started from.
// Descriptor strings are parsed once when the catalog is loaded.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllTypes is the history filter value that disables type filtering.
const AllTypes = "Toutes"

const (
	defaultWarmupMinutes   = 5
	defaultFinisherMinutes = 20
)

// WODFormats are the CrossFit workout formats offered for free-text session types.
var WODFormats = []string{"AMRAP", "For Time", "EMOM", "Tabata", "Chipper"}

//go:embed default.yaml
var defaultYAML []byte

type Kind string

const (
	KindStrength Kind = "strength"
	KindCrossFit Kind = "crossfit"
)

// Exercise is a prescribed exercise with its target set count.
type Exercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
}

// Activity is a warm-up or finisher. Label is the descriptor as written in
// the catalog; Name is the label without its duration.
type Activity struct {
	Name           string `json:"name"`
	Label          string `json:"label"`
	DefaultMinutes int    `json:"default_minutes"`
}

// Program is one session type.
type Program struct {
	Type      string     `json:"type"`
	Kind      Kind       `json:"kind"`
	Warmups   []Activity `json:"warmups"`
	Exercises []Exercise `json:"exercises"`
	Finisher  Activity   `json:"finisher"`
}

// Catalog is an ordered, read-only set of programs keyed by type.
type Catalog struct {
	programs []Program
	byType   map[string]int
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(file.Programs) == 0 {
		return nil, fmt.Errorf("catalog has no programs")
	}

	c := &Catalog{byType: make(map[string]int, len(file.Programs))}
	for i, spec := range file.Programs {
		p, err := spec.program()
		if err != nil {
			return nil, fmt.Errorf("program %d: %w", i, err)
		}
		if _, dup := c.byType[p.Type]; dup {
			return nil, fmt.Errorf("program %d: duplicate type %q", i, p.Type)
		}
		c.byType[p.Type] = len(c.programs)
		c.programs = append(c.programs, p)
	}
	return c, nil
}

func (s programSpec) program() (Program, error) {
	p := Program{Type: strings.TrimSpace(s.Type), Kind: s.Kind}
	if p.Type == "" {
		return Program{}, fmt.Errorf("type is required")
	}
	if p.Type == AllTypes {
		return Program{}, fmt.Errorf("type %q is reserved", AllTypes)
	}
	switch p.Kind {
	case "":
		p.Kind = KindStrength
	case KindStrength, KindCrossFit:
	default:
		return Program{}, fmt.Errorf("%s: unknown kind %q", p.Type, p.Kind)
	}
	if len(s.Exercises) == 0 {
		return Program{}, fmt.Errorf("%s: at least one exercise is required", p.Type)
	}
	if s.Finisher.name == "" {
		return Program{}, fmt.Errorf("%s: finisher is required", p.Type)
	}

	seen := make(map[string]bool, len(s.Exercises))
	for _, e := range s.Exercises {
		if seen[e.Name] {
			return Program{}, fmt.Errorf("%s: exercise %q listed twice", p.Type, e.Name)
		}
		seen[e.Name] = true
		p.Exercises = append(p.Exercises, e.Exercise)
	}
	for _, w := range s.Warmups {
		if w.name == "" {
			return Program{}, fmt.Errorf("%s: warm-up name is required", p.Type)
		}
		p.Warmups = append(p.Warmups, w.activity(defaultWarmupMinutes))
	}
	p.Finisher = s.Finisher.activity(defaultFinisherMinutes)
	return p, nil
}

// Types returns the program types in catalog order.
func (c *Catalog) Types() []string {
	types := make([]string, len(c.programs))
	for i, p := range c.programs {
		types[i] = p.Type
	}
	return types
}

// Programs returns every program in catalog order.
func (c *Catalog) Programs() []Program {
	out := make([]Program, len(c.programs))
	copy(out, c.programs)
	return out
}

// Program looks up a program by its type.
func (c *Catalog) Program(sessionType string) (Program, bool) {
	i, ok := c.byType[sessionType]
	if !ok {
		return Program{}, false
	}
	return c.programs[i], true
}

// Exercise returns the prescribed exercise by name.
func (p Program) Exercise(name string) (Exercise, bool) {
	for _, e := range p.Exercises {
		if e.Name == name {
			return e, true
		}
	}
	return Exercise{}, false
}
