// Package mcp exposes workout history to assistants over the Model Context
// Protocol. Every tool is read-only; sessions are recorded through the CLI,
// the TUI or the HTTP API.
package mcp

import (
	"log/slog"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// recentDays is the window of the recent_sessions resource.
const recentDays = 14

// Deps are the read-side services behind the tools.
type Deps struct {
	Catalog   *catalog.Catalog
	History   service.HistoryService
	Records   service.RecordService
	Dashboard service.DashboardService
	Schema    repository.SchemaRepo
}

// New creates an MCP server with all tools and resources registered.
func New(deps Deps, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("muscu", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Workout journal. Query recorded sessions, personal records per exercise, whole-history stats and the store schema. Weights are in kg. Read-only."),
	)

	h := &handlers{deps: deps, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListSessions, Handler: h.listSessions},
		server.ServerTool{Tool: toolGetPersonalRecord, Handler: h.getPersonalRecord},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolGetSchema, Handler: h.getSchema},
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	deps Deps
	log  *slog.Logger
}

var resRecentSessions = mcp.NewResource(
	"muscu://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("Sessions recorded in the last 14 days with their warm-ups, sets and finisher"),
	mcp.WithMIMEType("application/json"),
)
