package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"types":       s.deps.Catalog.Types(),
		"programs":    s.deps.Catalog.Programs(),
		"all_types":   catalog.AllTypes,
		"wod_formats": catalog.WODFormats,
	})
}

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "type"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session type"})
		return
	}
	p, ok := s.deps.Catalog.Program(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session type: " + name})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type sessionsResponse struct {
	Sessions []domain.SessionView `json:"sessions"`
	Warnings []string             `json:"warnings,omitempty"`
}

// handleListSessions degrades a query failure to an empty list with a
// warning; history is informational.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseHistoryFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp := sessionsResponse{Sessions: []domain.SessionView{}}
	views, err := s.deps.History.ListSessions(r.Context(), f)
	if err != nil {
		s.log.Warn("history unavailable", "error", err)
		resp.Warnings = append(resp.Warnings, err.Error())
	} else if views != nil {
		resp.Sessions = views
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.deps.History.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleRecords serves ?exercise=NAME for one record, or ?type=TYPE for
// every exercise of a program.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if sessionType := q.Get("type"); sessionType != "" {
		p, ok := s.deps.Catalog.Program(sessionType)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session type: " + sessionType})
			return
		}
		names := make([]string, len(p.Exercises))
		for i, e := range p.Exercises {
			names[i] = e.Name
		}
		records, err := s.deps.Records.RecordsFor(r.Context(), names)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"type": p.Type, "records": records})
		return
	}

	exercise := q.Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise or type parameter required"})
		return
	}
	pr, err := s.deps.Records.MaxWeightFor(r.Context(), exercise)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercise": exercise, "record": pr})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	recent, err := parseIntParam(r, "recent", service.DefaultRecentLimit)
	if err != nil || recent < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "recent must be a positive integer"})
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Dashboard.Overview(r.Context(), recent))
}

func (s *Server) parseHistoryFilter(r *http.Request) (service.HistoryFilter, error) {
	days, err := parseIntParam(r, "days", s.deps.DefaultDays)
	if err != nil || days < 0 {
		return service.HistoryFilter{}, errors.New("days must be a non-negative integer")
	}
	f := service.HistoryFilter{Days: days, Type: r.URL.Query().Get("type")}
	if v := r.URL.Query().Get("distinct"); v != "" {
		if f.Distinct, err = strconv.ParseBool(v); err != nil {
			return service.HistoryFilter{}, errors.New("distinct must be a boolean")
		}
	}
	return f, nil
}

// writeError maps the error taxonomy onto status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func parseIntParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
