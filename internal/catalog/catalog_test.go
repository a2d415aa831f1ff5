package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsAllPrograms(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{
		"PUSH (Lundi)", "PULL (Mardi)", "LEG (Mercredi)",
		"PUSH (Jeudi)", "PULL (Vendredi)", "LEG (Samedi)",
	}, c.Types())
}

func TestDefault_ParsesDescriptorsOnce(t *testing.T) {
	p, ok := Default().Program("PUSH (Lundi)")
	require.True(t, ok)

	assert.Equal(t, KindStrength, p.Kind)
	require.Len(t, p.Exercises, 10)
	assert.Equal(t, Exercise{Name: "Pec deck", Sets: 2}, p.Exercises[0])
	assert.Equal(t, Exercise{Name: "Biceps corde à la poulie (prise marteau)", Sets: 3}, p.Exercises[2])

	require.Len(t, p.Warmups, 2)
	assert.Equal(t, Activity{Name: "Tapis", Label: "Tapis (5 min)", DefaultMinutes: 5}, p.Warmups[0])
	assert.Equal(t, Activity{Name: "Élastique", Label: "Élastique", DefaultMinutes: 5}, p.Warmups[1])

	assert.Equal(t, Activity{Name: "Tapis", Label: "Tapis (20 min de marche)", DefaultMinutes: 20}, p.Finisher)
}

func TestProgram_Exercise(t *testing.T) {
	p, ok := Default().Program("LEG (Samedi)")
	require.True(t, ok)

	ex, ok := p.Exercise("Ischios")
	require.True(t, ok)
	assert.Equal(t, 4, ex.Sets)

	_, ok = p.Exercise("Pec deck")
	assert.False(t, ok)
}

func TestProgram_Unknown(t *testing.T) {
	_, ok := Default().Program("CrossFit - AMRAP")
	assert.False(t, ok)
}

func TestParseExercise(t *testing.T) {
	tests := []struct {
		in      string
		want    Exercise
		wantErr bool
	}{
		{in: "Pec deck - 2 séries", want: Exercise{Name: "Pec deck", Sets: 2}},
		{in: "Tirage horizontal (coude levé, arrière d'épaule) - 3 séries", want: Exercise{Name: "Tirage horizontal (coude levé, arrière d'épaule)", Sets: 3}},
		{in: "Extension triceps à la poulie vis-à-vis - 3 séries", want: Exercise{Name: "Extension triceps à la poulie vis-à-vis", Sets: 3}},
		{in: "Pec deck", wantErr: true},
		{in: "Pec deck - deux séries", wantErr: true},
		{in: "Pec deck - 0 séries", wantErr: true},
		{in: " - 3 séries", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExercise(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_StructuredDescriptors(t *testing.T) {
	src := `
programs:
  - type: CrossFit - AMRAP
    kind: crossfit
    warmups:
      - {name: Rameur, minutes: 8}
    exercises:
      - {name: Thrusters, sets: 5}
    finisher: {name: Vélo, minutes: 10}
`
	c, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	p, ok := c.Program("CrossFit - AMRAP")
	require.True(t, ok)
	assert.Equal(t, KindCrossFit, p.Kind)
	assert.Equal(t, []Exercise{{Name: "Thrusters", Sets: 5}}, p.Exercises)
	assert.Equal(t, Activity{Name: "Rameur", Label: "Rameur (8 min)", DefaultMinutes: 8}, p.Warmups[0])
	assert.Equal(t, 10, p.Finisher.DefaultMinutes)
}

func TestLoad_FinisherWithoutDurationDefaults(t *testing.T) {
	src := `
programs:
  - type: Free
    exercises: ["Dips - 3 séries"]
    finisher: Gainage
`
	c, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	p, _ := c.Program("Free")
	assert.Equal(t, KindStrength, p.Kind)
	assert.Equal(t, 20, p.Finisher.DefaultMinutes)
	assert.Equal(t, "Gainage", p.Finisher.Name)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]string{
		"empty":          `programs: []`,
		"bad set count":  "programs:\n  - type: A\n    exercises: [\"Dips - x séries\"]\n    finisher: Tapis\n",
		"duplicate type": "programs:\n  - type: A\n    exercises: [\"Dips - 3 séries\"]\n    finisher: T\n  - type: A\n    exercises: [\"Dips - 3 séries\"]\n    finisher: T\n",
		"reserved type":  "programs:\n  - type: Toutes\n    exercises: [\"Dips - 3 séries\"]\n    finisher: T\n",
		"no exercises":   "programs:\n  - type: A\n    finisher: T\n",
		"no finisher":    "programs:\n  - type: A\n    exercises: [\"Dips - 3 séries\"]\n",
		"unknown kind":   "programs:\n  - type: A\n    kind: yoga\n    exercises: [\"Dips - 3 séries\"]\n    finisher: T\n",
		"duplicate exercise": "programs:\n  - type: A\n    exercises: [\"Dips - 3 séries\", \"Dips - 2 séries\"]\n    finisher: T\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("programs:\n  - type: A\n    exercises: [\"Dips - 3 séries\"]\n    finisher: T\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, c.Types())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
