// Package server exposes the workout tracker as a JSON API. The entry
// endpoints are stateless: each request carries the in-progress attempt and
// each response returns the next one.
package server

import (
	"log/slog"
	"net/http"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/go-chi/chi/v5"
)

// Deps are the services the handlers call.
type Deps struct {
	Catalog     *catalog.Catalog
	Recorder    service.RecorderService
	History     service.HistoryService
	Records     service.RecordService
	Dashboard   service.DashboardService
	DefaultDays int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	deps   Deps
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(deps Deps, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		deps:   deps,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/catalog", s.handleCatalog)
	s.router.Get("/api/v1/catalog/{type}", s.handleProgram)

	s.router.Route("/api/v1/entry", func(r chi.Router) {
		r.Post("/start", s.handleEntryStart)
		r.Post("/add-set", s.handleEntryAddSet)
		r.Post("/remove-set", s.handleEntryRemoveSet)
		r.Post("/capture", s.handleEntryCapture)
		r.Post("/update", s.handleEntryUpdate)
		r.Post("/save", s.handleEntrySave)
	})

	s.router.Get("/api/v1/sessions", s.handleListSessions)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/v1/records", s.handleRecords)
	s.router.Get("/api/v1/stats", s.handleStats)
}
