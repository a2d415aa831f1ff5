package repository

import (
	"context"
	"testing"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	sess := testutil.NewTestSession("PUSH (Lundi)", testutil.WithNotes("Bonne séance"))
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fetched.ID)
	assert.Equal(t, "PUSH (Lundi)", fetched.Type)
	assert.Equal(t, "Bonne séance", fetched.Notes)
	assert.True(t, sess.PerformedAt.Equal(fetched.PerformedAt))
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_List_NewestFirst(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	old := testutil.NewTestSession("LEG (Mercredi)", testutil.WithDaysAgo(3))
	recent := testutil.NewTestSession("PUSH (Lundi)", testutil.WithDaysAgo(1))
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, recent))

	list, err := repo.List(ctx, SessionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recent.ID, list[0].ID)
	assert.Equal(t, old.ID, list[1].ID)
}

func TestSessionRepo_List_SameTimestampKeepsInsertOrder(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	at := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	first := testutil.NewTestSession("A", testutil.WithPerformedAt(at))
	second := testutil.NewTestSession("B", testutil.WithPerformedAt(at))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx, SessionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestSessionRepo_List_FiltersCompose(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	pushOld := testutil.NewTestSession("PUSH (Lundi)", testutil.WithDaysAgo(10))
	pushNew := testutil.NewTestSession("PUSH (Lundi)", testutil.WithDaysAgo(1))
	pullNew := testutil.NewTestSession("PULL (Mardi)", testutil.WithDaysAgo(2))
	require.NoError(t, repo.Create(ctx, pushOld))
	require.NoError(t, repo.Create(ctx, pushNew))
	require.NoError(t, repo.Create(ctx, pullNew))

	since := time.Now().UTC().AddDate(0, 0, -7)

	byWindow, err := repo.List(ctx, SessionFilter{Since: &since})
	require.NoError(t, err)
	assert.Len(t, byWindow, 2)

	byType, err := repo.List(ctx, SessionFilter{Type: "PUSH (Lundi)"})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	both, err := repo.List(ctx, SessionFilter{Since: &since, Type: "PUSH (Lundi)"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, pushNew.ID, both[0].ID)
}

func TestSessionRepo_List_Empty(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))

	list, err := repo.List(context.Background(), SessionFilter{Type: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, list)
}
