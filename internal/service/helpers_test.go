package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/djouu94/workout-tracker-v2/internal/db"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
	"github.com/djouu94/workout-tracker-v2/internal/testutil"
)

type testServices struct {
	db        *sql.DB
	recorder  RecorderService
	history   *historyService
	records   RecordService
	dashboard DashboardService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newTestServicesWithUoW(database, testutil.NewTestUoW(database))
}

func newTestServicesWithUoW(database *sql.DB, uow db.UnitOfWork) testServices {
	sets := repository.NewSQLiteExerciseSetRepo(database)
	return testServices{
		db:       database,
		recorder: NewRecorderService(uow),
		history: NewHistoryService(
			repository.NewSQLiteSessionRepo(database),
			sets,
			repository.NewSQLiteWarmupRepo(database),
			repository.NewSQLiteFinisherRepo(database),
		).(*historyService),
		records:   NewRecordService(sets),
		dashboard: NewDashboardService(repository.NewSQLiteStatsRepo(database), sets, nil),
	}
}

func intPtr(n int) *int { return &n }

func pushInput() RecordInput {
	return RecordInput{
		Type:  "PUSH (Lundi)",
		Notes: "Bonne séance",
		Warmups: []domain.WarmupEntry{
			{Activity: "Tapis", Minutes: intPtr(5)},
			{Activity: "Élastique"},
		},
		Sets: []domain.ExerciseSet{
			{Name: "Pec deck", Weight: 20, Reps: 10},
			{Name: "Pec deck", Weight: 25, Reps: 8},
			{Name: "Dips", Weight: 0, Reps: 12},
		},
		Finisher: &domain.FinisherEntry{Activity: "Tapis", Minutes: 20},
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}
