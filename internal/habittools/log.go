package habittools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puch-labs/habitflow/internal/habit"
)

// LogHabitTool handles the log_habit MCP tool.
type LogHabitTool struct {
	store *habit.Store
}

// NewLogHabitTool creates a LogHabitTool with the given store.
func NewLogHabitTool(store *habit.Store) *LogHabitTool {
	return &LogHabitTool{store: store}
}

// Definition returns the MCP tool definition for log_habit.
func (t *LogHabitTool) Definition() mcp.Tool {
	return mcp.NewTool("log_habit",
		mcp.WithDescription(
			"Log a habit completion for a calendar day (today by default). Logging the same day twice is "+
				"harmless — the existing entry is kept. The response includes the updated streak.",
		),
		mcp.WithString("habit_id",
			mcp.Required(),
			mcp.Description("ID of the habit to log"),
		),
		mcp.WithString("date",
			mcp.Description("Completion date as YYYY-MM-DD (UTC calendar day, default today)"),
		),
		mcp.WithString("note",
			mcp.Description("Optional note about the completion"),
		),
	)
}

// Handle processes the log_habit tool call.
func (t *LogHabitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID := req.GetString("habit_id", "")
	if habitID == "" {
		return mcp.NewToolResultError("'habit_id' is required"), nil
	}

	entry, created, err := t.store.LogCompletion(habitID, req.GetString("date", ""), req.GetString("note", ""))
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) || errors.Is(err, habit.ErrValidation) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to log completion: %v", err)), nil
	}

	h, err := t.store.GetHabit(habitID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load habit: %v", err)), nil
	}
	st, err := t.store.ComputeStreak(habitID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute streak: %v", err)), nil
	}

	var response string
	if created {
		response = fmt.Sprintf("✅ Logged %q for %s\n%s", h.Name, entry.Date, streakLine(h.Cadence, *st))
	} else {
		response = fmt.Sprintf("👍 %q was already logged for %s — nothing to do.\n%s", h.Name, entry.Date, streakLine(h.Cadence, *st))
	}
	return mcp.NewToolResultText(response), nil
}
