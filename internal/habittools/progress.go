package habittools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puch-labs/habitflow/internal/habit"
)

// recentDays is how many trailing days of the window get a day-by-day line.
const recentDays = 7

// ProgressTool handles the get_habit_progress MCP tool.
type ProgressTool struct {
	store *habit.Store
}

// NewProgressTool creates a ProgressTool with the given store.
func NewProgressTool(store *habit.Store) *ProgressTool {
	return &ProgressTool{store: store}
}

// Definition returns the MCP tool definition for get_habit_progress.
func (t *ProgressTool) Definition() mcp.Tool {
	return mcp.NewTool("get_habit_progress",
		mcp.WithDescription(
			"Detailed progress for one habit over a trailing window: completion rate, streak, "+
				"and a day-by-day view of the last week. Read-only.",
		),
		mcp.WithString("habit_id",
			mcp.Required(),
			mcp.Description("ID of the habit"),
		),
		mcp.WithNumber("days",
			mcp.Description("Window length in days (default 30, max 365)"),
		),
	)
}

// Handle processes the get_habit_progress tool call.
func (t *ProgressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID := req.GetString("habit_id", "")
	if habitID == "" {
		return mcp.NewToolResultError("'habit_id' is required"), nil
	}

	report, err := t.store.Progress(habitID, intArg(req, "days", habit.DefaultWindowDays))
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get progress: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 **Progress for %q**\n\n", report.Habit.Name)
	fmt.Fprintf(&sb, "📈 Completion rate: %.1f%%\n", report.CompletionRate)
	fmt.Fprintf(&sb, "✅ Completed: %d/%d days\n", report.CompletedDays, report.WindowDays)
	fmt.Fprintf(&sb, "%s\n\n", streakLine(report.Habit.Cadence, report.Streak))

	sb.WriteString("📅 **Recent days:**\n")
	days := report.Days
	if len(days) > recentDays {
		days = days[len(days)-recentDays:]
	}
	for _, d := range days {
		mark := "❌"
		if d.Completed {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%s: %s", d.Date, mark)
		if d.Note != "" {
			fmt.Fprintf(&sb, " — %s", d.Note)
		}
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
