package habittools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puch-labs/habitflow/internal/habit"
)

// GetHabitsTool handles the get_habits MCP tool.
type GetHabitsTool struct {
	store *habit.Store
}

// NewGetHabitsTool creates a GetHabitsTool with the given store.
func NewGetHabitsTool(store *habit.Store) *GetHabitsTool {
	return &GetHabitsTool{store: store}
}

// Definition returns the MCP tool definition for get_habits.
func (t *GetHabitsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_habits",
		mcp.WithDescription(
			"List habits with their current streaks and totals. Read-only.",
		),
		mcp.WithString("status",
			mcp.Description("Which habits to show: active (default), archived, or all"),
		),
	)
}

// Handle processes the get_habits tool call.
func (t *GetHabitsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := habit.StatusFilter(req.GetString("status", string(habit.FilterActive)))
	switch filter {
	case habit.FilterActive, habit.FilterArchived, habit.FilterAll:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown status %q (use active, archived, or all)", filter)), nil
	}

	habits, err := t.store.ListHabits(filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list habits: %v", err)), nil
	}

	if len(habits) == 0 {
		return mcp.NewToolResultText(
			"🌱 No habits found. Create your first habit to get started!\n\n" +
				"💡 Try: 'Create a habit for daily meditation'",
		), nil
	}

	var sb strings.Builder
	sb.WriteString("📋 **Your Habits:**\n\n")
	for _, h := range habits {
		sb.WriteString(summarizeHabit(h))
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
