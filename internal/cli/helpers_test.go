package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/cli/formatter"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/djouu94/workout-tracker-v2/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testApp wires real services over an in-memory store.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	sets := repository.NewSQLiteExerciseSetRepo(database)
	return &App{
		Catalog:  catalog.Default(),
		Recorder: service.NewRecorderService(testutil.NewTestUoW(database)),
		History: service.NewHistoryService(
			repository.NewSQLiteSessionRepo(database),
			sets,
			repository.NewSQLiteWarmupRepo(database),
			repository.NewSQLiteFinisherRepo(database),
		),
		Records:       service.NewRecordService(sets),
		Dashboard:     service.NewDashboardService(repository.NewSQLiteStatsRepo(database), sets, nil),
		Schema:        repository.NewSQLiteSchemaRepo(database),
		DefaultDays:   7,
		IsInteractive: func() bool { return false },
	}
}

// runCmd executes the root command with args and returns its plain output.
func runCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return formatter.StripANSI(out.String()), err
}

// seedPecDeck records one PUSH session with Pec deck 20×10, 25×8, 25×12.
func seedPecDeck(t *testing.T, app *App, at time.Time) string {
	t.Helper()
	id, err := app.Recorder.RecordSession(context.Background(), service.RecordInput{
		Type:        "PUSH (Lundi)",
		PerformedAt: at,
		Sets: []domain.ExerciseSet{
			*testutil.NewTestSet("", "Pec deck", 20, 10),
			*testutil.NewTestSet("", "Pec deck", 25, 8),
			*testutil.NewTestSet("", "Pec deck", 25, 12),
		},
	})
	require.NoError(t, err)
	return id
}

func historyAll() service.HistoryFilter {
	return service.HistoryFilter{Type: catalog.AllTypes}
}

func countOccurrences(s, sub string) int {
	return strings.Count(s, sub)
}
