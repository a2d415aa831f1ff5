package cli

import (
	"context"
	"log/slog"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to everything CLI commands use.
type App struct {
	Catalog   *catalog.Catalog
	Recorder  service.RecorderService
	History   service.HistoryService
	Records   service.RecordService
	Dashboard service.DashboardService
	Schema    repository.SchemaRepo
	Logger    *slog.Logger

	// DefaultDays is the history window used when --days is not given.
	DefaultDays int

	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context) error
	// ServeMCP runs the MCP server on stdio until ctx is cancelled.
	ServeMCP func(ctx context.Context) error

	// IsInteractive reports whether stdin is a terminal. The entry TUI
	// refuses to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "muscu" command and registers all
// subcommands against the provided App. Without a subcommand it prints the
// home-screen overview.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "muscu",
		Short:         "Carnet d'entraînement: programmes, séances, records",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, app, service.DefaultRecentLimit)
		},
	}
	root.PersistentFlags().String("config", "", "config file (default ~/.muscu/config.yaml)")

	root.AddCommand(
		newCatalogCmd(app),
		newSessionCmd(app),
		newHistoryCmd(app),
		newPRCmd(app),
		newStatsCmd(app),
		newInspectCmd(app),
		newServeCmd(app),
		newMCPCmd(app),
	)

	return root
}
