package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/entry"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/djouu94/workout-tracker-v2/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, service.RecorderService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	sets := repository.NewSQLiteExerciseSetRepo(database)
	recorder := service.NewRecorderService(testutil.NewTestUoW(database))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Deps{
		Catalog:  catalog.Default(),
		Recorder: recorder,
		History: service.NewHistoryService(
			repository.NewSQLiteSessionRepo(database),
			sets,
			repository.NewSQLiteWarmupRepo(database),
			repository.NewSQLiteFinisherRepo(database),
		),
		Records:     service.NewRecordService(sets),
		Dashboard:   service.NewDashboardService(repository.NewSQLiteStatsRepo(database), sets, logger),
		DefaultDays: 30,
	}, logger), recorder
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEntry(t *testing.T, rec *httptest.ResponseRecorder) entryResponse {
	t.Helper()
	var resp entryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCatalogRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Types    []string `json:"types"`
		AllTypes string   `json:"all_types"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Types, 6)
	assert.Equal(t, "Toutes", body.AllTypes)

	rec = do(t, s, http.MethodGet, "/api/v1/catalog/"+url.PathEscape("LEG (Samedi)"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p catalog.Program
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, "LEG (Samedi)", p.Type)
	assert.Equal(t, "Leg extension", p.Exercises[0].Name)

	rec = do(t, s, http.MethodGet, "/api/v1/catalog/Yoga", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntryFlow_StartCaptureSave(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/entry/start", startRequest{Type: "PUSH (Lundi)"})
	require.Equal(t, http.StatusOK, rec.Code)
	a := decodeEntry(t, rec).Attempt
	require.True(t, a.Active)

	rec = do(t, s, http.MethodPost, "/api/v1/entry/add-set", exerciseRequest{Attempt: a, Exercise: "Pec deck"})
	require.Equal(t, http.StatusOK, rec.Code)
	a = decodeEntry(t, rec).Attempt
	assert.Equal(t, 3, a.Exercises[0].TargetSets)

	rec = do(t, s, http.MethodPost, "/api/v1/entry/capture", captureRequest{Attempt: a, Exercise: "Pec deck", Index: 2, Weight: 25, Reps: 12})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEntry(t, rec)
	require.NotNil(t, resp.Captured)
	assert.True(t, *resp.Captured)
	a = resp.Attempt

	rec = do(t, s, http.MethodPost, "/api/v1/entry/capture", captureRequest{Attempt: a, Exercise: "Dips", Index: 0, Weight: 0, Reps: 10})
	resp = decodeEntry(t, rec)
	assert.False(t, *resp.Captured)

	minutes := 25
	notes := "bonne forme"
	rec = do(t, s, http.MethodPost, "/api/v1/entry/update", updateRequest{
		Attempt:  a,
		Notes:    &notes,
		Finisher: &finisherUpdate{Minutes: &minutes},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	a = decodeEntry(t, rec).Attempt
	assert.Equal(t, 25, a.Finisher.Minutes)

	rec = do(t, s, http.MethodPost, "/api/v1/entry/save", saveRequest{Attempt: a})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp = decodeEntry(t, rec)
	assert.NotEmpty(t, resp.SessionID)
	assert.False(t, resp.Attempt.Active)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions/"+resp.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view domain.SessionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, []string{"Pec deck (25 kg × 12)"}, view.DisplaySets)
	assert.Equal(t, []string{"Tapis (25 min)"}, view.DisplayFinishers)
	assert.Equal(t, "bonne forme", view.Notes)
}

func TestEntrySave_NoValidatedSetsKeepsAttempt(t *testing.T) {
	s, _ := newTestServer(t)
	a := entry.Start(catalog.Default().Programs()[0])
	a, _ = a.AddSet("Dips")

	rec := do(t, s, http.MethodPost, "/api/v1/entry/save", saveRequest{Attempt: a})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeEntry(t, rec)
	assert.Contains(t, resp.Error, "validated exercise set")
	assert.True(t, resp.Attempt.Active)
	assert.Equal(t, a.Exercises, resp.Attempt.Exercises)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions?days=0", nil)
	var list sessionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Empty(t, list.Sessions)
}

func TestEntry_RejectsTamperedAttempt(t *testing.T) {
	s, _ := newTestServer(t)
	a := entry.Start(catalog.Default().Programs()[0])
	a.Exercises[0].TargetSets = 1
	a.Exercises[0].Slots = []entry.Slot{
		{Weight: 0, Reps: 0, Captured: true},
		{Weight: 30, Reps: 5, Captured: true},
	}

	notes := "x"
	for _, tc := range []struct {
		path string
		body any
	}{
		{"/api/v1/entry/save", saveRequest{Attempt: a}},
		{"/api/v1/entry/add-set", exerciseRequest{Attempt: a, Exercise: "Dips"}},
		{"/api/v1/entry/remove-set", exerciseRequest{Attempt: a, Exercise: "Dips"}},
		{"/api/v1/entry/capture", captureRequest{Attempt: a, Exercise: "Dips", Weight: 10, Reps: 8}},
		{"/api/v1/entry/update", updateRequest{Attempt: a, Notes: &notes}},
		{"/api/v1/entry/update", updateRequest{Attempt: a}},
	} {
		rec := do(t, s, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, tc.path)
		resp := decodeEntry(t, rec)
		assert.Contains(t, resp.Error, "Pec deck", tc.path)
		assert.Equal(t, a.Exercises, resp.Attempt.Exercises, tc.path)
	}

	rec := do(t, s, http.MethodGet, "/api/v1/sessions?days=0", nil)
	var list sessionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Empty(t, list.Sessions)
}

type brokenRecorder struct{}

func (brokenRecorder) RecordSession(context.Context, service.RecordInput) (string, error) {
	return "", fmt.Errorf("recording session: %w: %w", domain.ErrPersistence, errors.New("database is locked"))
}

func TestEntrySave_PersistenceFailureIs500(t *testing.T) {
	s, _ := newTestServer(t)
	s.deps.Recorder = brokenRecorder{}
	a := entry.Start(catalog.Default().Programs()[0])
	a, _, _ = a.CaptureSet("Pec deck", 0, 20, 10)

	rec := do(t, s, http.MethodPost, "/api/v1/entry/save", saveRequest{Attempt: a})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeEntry(t, rec)
	assert.Equal(t, a.ValidatedSets(), resp.Attempt.ValidatedSets())
}

func TestEntry_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	a := entry.Start(catalog.Default().Programs()[0])

	rec := do(t, s, http.MethodPost, "/api/v1/entry/add-set", exerciseRequest{Attempt: a, Exercise: "Squat"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/entry/add-set", exerciseRequest{Exercise: "Pec deck"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/entry/start", startRequest{Type: " "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entry/capture", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEntryRemoveSet_FloorAtOne(t *testing.T) {
	s, _ := newTestServer(t)
	a := entry.Start(catalog.Default().Programs()[0])
	a, _ = a.RemoveSet("Pec deck")

	rec := do(t, s, http.MethodPost, "/api/v1/entry/remove-set", exerciseRequest{Attempt: a, Exercise: "Pec deck"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeEntry(t, rec).Attempt.Exercises[0].TargetSets)
}

func TestEntryStart_FreeTextWOD(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/entry/start", startRequest{Type: "CrossFit - AMRAP", Exercises: []string{"Thrusters", "Burpees"}})
	require.Equal(t, http.StatusOK, rec.Code)
	a := decodeEntry(t, rec).Attempt
	assert.Equal(t, catalog.KindCrossFit, a.Kind)
	assert.Len(t, a.Exercises, 2)
	assert.Nil(t, a.Finisher)
}

func TestListSessions_FiltersAndValidation(t *testing.T) {
	s, recorder := newTestServer(t)
	ctx := t.Context()
	for _, typ := range []string{"PUSH (Lundi)", "PULL (Mardi)"} {
		_, err := recorder.RecordSession(ctx, service.RecordInput{
			Type: typ,
			Sets: []domain.ExerciseSet{{Name: "Dips", Weight: 0, Reps: 10}, {Name: "Dips", Weight: 0, Reps: 10}},
		})
		require.NoError(t, err)
	}

	rec := do(t, s, http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list sessionsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list.Sessions, 2)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions?type="+url.QueryEscape("PULL (Mardi)")+"&distinct=true", nil)
	list = sessionsResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Sessions, 1)
	assert.Len(t, list.Sessions[0].DisplaySets, 1)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions?type=Toutes", nil)
	list = sessionsResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list.Sessions, 2)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/v1/sessions?days=-3", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/v1/sessions?distinct=maybe", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/v1/sessions/missing", nil).Code)
}

func TestRecordsAndStats(t *testing.T) {
	s, recorder := newTestServer(t)
	_, err := recorder.RecordSession(t.Context(), service.RecordInput{
		Type: "PUSH (Lundi)",
		Sets: []domain.ExerciseSet{
			{Name: "Pec deck", Weight: 20, Reps: 10},
			{Name: "Pec deck", Weight: 25, Reps: 8},
			{Name: "Pec deck", Weight: 25, Reps: 12},
		},
	})
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/api/v1/records?exercise="+url.QueryEscape("Pec deck"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var one struct {
		Record *domain.PersonalRecord `json:"record"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&one))
	require.NotNil(t, one.Record)
	assert.Equal(t, 25.0, one.Record.MaxWeight)
	assert.Equal(t, 12, one.Record.MaxReps)

	rec = do(t, s, http.MethodGet, "/api/v1/records?exercise=Fentes", nil)
	one.Record = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&one))
	assert.Nil(t, one.Record)

	rec = do(t, s, http.MethodGet, "/api/v1/records?type="+url.QueryEscape("PUSH (Lundi)"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var many struct {
		Records map[string]domain.PersonalRecord `json:"records"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&many))
	assert.Len(t, many.Records, 1)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/v1/records", nil).Code)

	rec = do(t, s, http.MethodGet, "/api/v1/stats?recent=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var o service.Overview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&o))
	assert.Equal(t, 3, o.Stats.TotalExerciseSets)
	assert.Len(t, o.Recent, 2)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/v1/stats?recent=zero", nil).Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodOptions, "/api/v1/entry/save", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogging(slog.New(slog.NewTextHandler(&buf, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "path=/x")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(domain.Invalid("x", "bad")))
	assert.Equal(t, http.StatusNotFound, statusFor(repository.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.Join(domain.ErrPersistence, errors.New("disk"))))
}
