package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/repository"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListSessions = mcp.NewTool("list_sessions",
	mcp.WithDescription("List recorded workout sessions, newest first, with warm-ups, exercise sets (weight × reps) and finisher."),
	mcp.WithNumber("days", mcp.Description("Only sessions from the last N days. 0 or absent means all history.")),
	mcp.WithString("type", mcp.Description("Exact session type, e.g. 'PUSH (Lundi)'. 'Toutes' or absent means all types.")),
	mcp.WithBoolean("distinct", mcp.Description("Collapse identical sets within a session. Defaults to false.")),
)

var toolGetPersonalRecord = mcp.NewTool("get_personal_record",
	mcp.WithDescription("Heaviest weight ever logged for an exercise and the best reps at exactly that weight. Returns null when the exercise was never logged."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name, e.g. 'Pec deck'")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Total sessions, total exercise sets, heaviest weight overall, and the most recent sets."),
	mcp.WithNumber("recent", mcp.Description("Number of recent sets to include. Defaults to 10.")),
)

var toolGetSchema = mcp.NewTool("get_schema",
	mcp.WithDescription("Describe the store tables and columns with row counts. With 'table', return that table's latest raw rows instead."),
	mcp.WithString("table", mcp.Description("Table to dump"), mcp.Enum("sessions", "exercise_sets", "warmups", "finishers")),
	mcp.WithNumber("limit", mcp.Description("Rows to dump. Defaults to 20.")),
)

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List the training programs: warm-ups, exercises with their target set counts, and finisher."),
)

// --- Tool handlers ---

func (h *handlers) listSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 0)
	if days < 0 {
		return mcp.NewToolResultError("days must be >= 0"), nil
	}
	f := service.HistoryFilter{
		Days:     days,
		Type:     req.GetString("type", catalog.AllTypes),
		Distinct: req.GetBool("distinct", false),
	}
	views, err := h.deps.History.ListSessions(ctx, f)
	if err != nil {
		h.log.Error("mcp list_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(views)
}

func (h *handlers) getPersonalRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	pr, err := h.deps.Records.MaxWeightFor(ctx, exercise)
	if err != nil {
		h.log.Error("mcp get_personal_record", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(map[string]any{"exercise": exercise, "record": pr})
}

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recent := req.GetInt("recent", service.DefaultRecentLimit)
	return jsonResult(h.deps.Dashboard.Overview(ctx, recent))
}

func (h *handlers) getSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if table := req.GetString("table", ""); table != "" {
		dump, err := h.deps.Schema.Dump(ctx, table, req.GetInt("limit", 20))
		if errors.Is(err, repository.ErrNotFound) {
			return mcp.NewToolResultError("unknown table: " + table), nil
		}
		if err != nil {
			h.log.Error("mcp get_schema", "table", table, "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		return jsonResult(dump)
	}

	tables, err := h.deps.Schema.Describe(ctx)
	if err != nil {
		h.log.Error("mcp get_schema", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(tables)
}

func (h *handlers) listPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.deps.Catalog.Programs())
}

func jsonResult[T any](v T) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Resources ---

func (h *handlers) recentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	views, err := h.deps.History.ListSessions(ctx, service.HistoryFilter{Days: recentDays})
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(views)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
