package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/cli/formatter"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/entry"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Saisir ou consulter une séance",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionRecordCmd(app),
		newSessionShowCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start [TYPE]",
		Short: "Saisie interactive d'une séance",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return app.Catalog.Types(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return errors.New("session start needs an interactive terminal; use 'muscu session record' instead")
			}

			sessionType := ""
			if len(args) == 1 {
				sessionType = args[0]
			} else {
				picked, err := pickSessionType(app.Catalog)
				if err != nil {
					return err
				}
				sessionType = picked
			}

			model := newEntryModel(app, entry.Start(programFor(app.Catalog, sessionType)))
			final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			if err != nil {
				return fmt.Errorf("running entry screen: %w", err)
			}
			if m, ok := final.(*entryModel); ok && m.savedID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("Séance enregistrée"), formatter.Dim(m.savedID))
			}
			return nil
		},
	}
}

func newSessionRecordCmd(app *App) *cobra.Command {
	var sessionType, notes, finisher, at string
	sets := &setListValue{}
	warmups := &warmupListValue{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Enregistrer une séance sans saisie interactive",
		Example: `  muscu session record --type "PUSH (Lundi)" \
    --warmup "Tapis:5" --warmup "Élastique" \
    --set "Pec deck:25x8" --set "Pec deck:25x10" \
    --finisher "Tapis:20"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := service.RecordInput{
				Type:    strings.TrimSpace(sessionType),
				Notes:   notes,
				Sets:    sets.sets,
				Warmups: warmups.warmups,
			}
			if at != "" {
				t, err := parseWhen(at)
				if err != nil {
					return err
				}
				in.PerformedAt = t
			}
			if finisher != "" {
				name, minutes, err := parseActivityFlag(finisher)
				if err != nil {
					return err
				}
				in.Finisher = &domain.FinisherEntry{Activity: name, Minutes: minutes}
			}

			id, err := app.Recorder.RecordSession(cmd.Context(), in)
			if err != nil {
				return err
			}

			view, err := app.History.GetSession(cmd.Context(), id)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Séance enregistrée %s\n", id)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionDetail(*view, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionType, "type", "", "type de séance")
	cmd.Flags().Var(sets, "set", "série validée, répétable")
	cmd.Flags().Var(warmups, "warmup", "échauffement, répétable")
	cmd.Flags().StringVar(&finisher, "finisher", "", "finisher NAME:MIN")
	cmd.Flags().StringVar(&notes, "notes", "", "notes libres")
	cmd.Flags().StringVar(&at, "at", "", "date de la séance (RFC3339 ou 2006-01-02 15:04), maintenant par défaut")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return app.Catalog.Types(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Détail d'une séance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.History.GetSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionDetail(*view, time.Now()))
			return nil
		},
	}
}

// programFor returns the catalog program for sessionType. Types outside the
// catalog are free-form CrossFit sessions with no prescribed exercise.
func programFor(cat *catalog.Catalog, sessionType string) catalog.Program {
	if p, ok := cat.Program(sessionType); ok {
		return p
	}
	return catalog.Program{Type: sessionType, Kind: catalog.KindCrossFit}
}

func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at %q: expected RFC3339 or 2006-01-02 15:04", s)
	}
	return t, nil
}
