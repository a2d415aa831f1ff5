package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/cli/formatter"
)

// freeSessionOption is the select value that switches to a free-form type.
const freeSessionOption = "\x00free"

// muscuHuhTheme returns a huh theme matching the formatter palette.
func muscuHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// sessionTypeOptions lists catalog programs followed by the free-form entry.
func sessionTypeOptions(cat *catalog.Catalog) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(cat.Types())+1)
	for _, t := range cat.Types() {
		opts = append(opts, huh.NewOption(t, t))
	}
	return append(opts, huh.NewOption("CrossFit (séance libre)", freeSessionOption))
}

// pickSessionType asks for the session type. Choosing the free-form entry
// asks for a name, suggesting the usual WOD formats.
func pickSessionType(cat *catalog.Catalog) (string, error) {
	var picked string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type de séance").
				Options(sessionTypeOptions(cat)...).
				Value(&picked),
		),
	).WithTheme(muscuHuhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return "", err
	}
	if picked != freeSessionOption {
		return picked, nil
	}

	var name string
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nom de la séance").
				Description(strings.Join(catalog.WODFormats, ", ")).
				Suggestions(catalog.WODFormats).
				Value(&name).
				Validate(validateFreeType(cat)),
		),
	).WithTheme(muscuHuhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

func validateFreeType(cat *catalog.Catalog) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		switch {
		case s == "":
			return errors.New("nom requis")
		case s == catalog.AllTypes:
			return errors.New("nom réservé")
		}
		if _, ok := cat.Program(s); ok {
			return errors.New("ce type existe déjà dans le catalogue")
		}
		return nil
	}
}
