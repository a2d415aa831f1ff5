package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/entry"
)

type startRequest struct {
	Type      string   `json:"type"`
	Exercises []string `json:"exercises,omitempty"`
}

type exerciseRequest struct {
	Attempt  entry.Attempt `json:"attempt"`
	Exercise string        `json:"exercise"`
}

type captureRequest struct {
	Attempt  entry.Attempt `json:"attempt"`
	Exercise string        `json:"exercise"`
	Index    int           `json:"index"`
	Weight   float64       `json:"weight"`
	Reps     int           `json:"reps"`
}

type warmupUpdate struct {
	Index   int     `json:"index"`
	Minutes *int    `json:"minutes,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type finisherUpdate struct {
	Minutes *int    `json:"minutes,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type updateRequest struct {
	Attempt     entry.Attempt   `json:"attempt"`
	Notes       *string         `json:"notes,omitempty"`
	Warmups     []warmupUpdate  `json:"warmups,omitempty"`
	Finisher    *finisherUpdate `json:"finisher,omitempty"`
	AddExercise string          `json:"add_exercise,omitempty"`
}

type saveRequest struct {
	Attempt entry.Attempt `json:"attempt"`
}

// entryResponse always carries the attempt the client should keep: the next
// one on success, the one it sent on failure.
type entryResponse struct {
	Attempt   entry.Attempt `json:"attempt"`
	Captured  *bool         `json:"captured,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// handleEntryStart starts from a catalog program, or from free text (a
// CrossFit WOD) with an optional exercise list.
func (s *Server) handleEntryStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !decode(w, r, &req) {
		return
	}
	req.Type = strings.TrimSpace(req.Type)
	if req.Type == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "type is required"})
		return
	}

	p, ok := s.deps.Catalog.Program(req.Type)
	if !ok {
		p = catalog.Program{Type: req.Type, Kind: catalog.KindCrossFit}
	}
	a := entry.Start(p)
	for _, name := range req.Exercises {
		next, err := a.AddExercise(name)
		if err != nil {
			s.writeEntryError(w, a, err)
			return
		}
		a = next
	}
	writeJSON(w, http.StatusOK, entryResponse{Attempt: a})
}

func (s *Server) handleEntryAddSet(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !decode(w, r, &req) {
		return
	}
	next, err := req.Attempt.AddSet(req.Exercise)
	if err != nil {
		s.writeEntryError(w, req.Attempt, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{Attempt: next})
}

func (s *Server) handleEntryRemoveSet(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !decode(w, r, &req) {
		return
	}
	next, err := req.Attempt.RemoveSet(req.Exercise)
	if err != nil {
		s.writeEntryError(w, req.Attempt, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{Attempt: next})
}

func (s *Server) handleEntryCapture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if !decode(w, r, &req) {
		return
	}
	next, captured, err := req.Attempt.CaptureSet(req.Exercise, req.Index, req.Weight, req.Reps)
	if err != nil {
		s.writeEntryError(w, req.Attempt, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{Attempt: next, Captured: &captured})
}

// handleEntryUpdate applies every field present in the request, in order,
// and stops at the first rejected one.
func (s *Server) handleEntryUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !decode(w, r, &req) {
		return
	}
	a := req.Attempt
	if err := a.Validate(); err != nil {
		s.writeEntryError(w, req.Attempt, err)
		return
	}
	var err error
	if req.Notes != nil {
		if a, err = a.SetNotes(*req.Notes); err != nil {
			s.writeEntryError(w, req.Attempt, err)
			return
		}
	}
	for _, u := range req.Warmups {
		if u.Minutes != nil {
			if a, err = a.SetWarmupMinutes(u.Index, *u.Minutes); err != nil {
				s.writeEntryError(w, req.Attempt, err)
				return
			}
		}
		if u.Notes != nil {
			if a, err = a.SetWarmupNotes(u.Index, *u.Notes); err != nil {
				s.writeEntryError(w, req.Attempt, err)
				return
			}
		}
	}
	if f := req.Finisher; f != nil {
		if f.Minutes != nil {
			if a, err = a.SetFinisherMinutes(*f.Minutes); err != nil {
				s.writeEntryError(w, req.Attempt, err)
				return
			}
		}
		if f.Notes != nil {
			if a, err = a.SetFinisherNotes(*f.Notes); err != nil {
				s.writeEntryError(w, req.Attempt, err)
				return
			}
		}
	}
	if req.AddExercise != "" {
		if a, err = a.AddExercise(req.AddExercise); err != nil {
			s.writeEntryError(w, req.Attempt, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, entryResponse{Attempt: a})
}

func (s *Server) handleEntrySave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decode(w, r, &req) {
		return
	}
	next, id, err := entry.Save(r.Context(), s.deps.Recorder, req.Attempt)
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			s.log.Error("saving session failed", "type", req.Attempt.Type, "error", err)
		}
		s.writeEntryError(w, next, err)
		return
	}
	s.log.Info("session recorded", "session_id", id, "type", req.Attempt.Type)
	writeJSON(w, http.StatusCreated, entryResponse{Attempt: next, SessionID: id})
}

func (s *Server) writeEntryError(w http.ResponseWriter, a entry.Attempt, err error) {
	status := statusFor(err)
	if errors.Is(err, entry.ErrNoAttempt) {
		status = http.StatusConflict
	}
	writeJSON(w, status, entryResponse{Attempt: a, Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}
