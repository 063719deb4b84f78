package habittools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puch-labs/habitflow/internal/habit"
)

// ShareProgressTool handles the get_shareable_progress MCP tool.
type ShareProgressTool struct {
	store *habit.Store
}

// NewShareProgressTool creates a ShareProgressTool with the given store.
func NewShareProgressTool(store *habit.Store) *ShareProgressTool {
	return &ShareProgressTool{store: store}
}

// Definition returns the MCP tool definition for get_shareable_progress.
func (t *ShareProgressTool) Definition() mcp.Tool {
	return mcp.NewTool("get_shareable_progress",
		mcp.WithDescription(
			"Generate a shareable progress summary for social media from the user's habits and streaks. Read-only.",
		),
	)
}

// Handle processes the get_shareable_progress tool call.
func (t *ShareProgressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := t.store.Analytics(0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute analytics: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("🎯 **My Habit Tracking Progress**\n\n")
	fmt.Fprintf(&sb, "📊 Actively tracking %d habits\n", snap.TotalHabits)

	if len(snap.TopStreaks) > 0 && snap.TopStreaks[0].Current > 0 {
		best := snap.TopStreaks[0]
		fmt.Fprintf(&sb, "🔥 Best streak: %d (%s)\n", best.Current, best.Name)
	}
	fmt.Fprintf(&sb, "📈 Today's completion: %.1f%%\n", snap.TodayRate)

	if len(snap.TopStreaks) > 0 {
		sb.WriteString("\n🏆 **Top Performing Habits:**\n")
		top := snap.TopStreaks
		if len(top) > 3 {
			top = top[:3]
		}
		for _, ts := range top {
			fmt.Fprintf(&sb, "  • %s: %d streak\n", ts.Name, ts.Current)
		}
	}

	sb.WriteString("\n🚀 Building better habits, one day at a time!\n")
	sb.WriteString("#HabitTracker #SelfImprovement")

	return mcp.NewToolResultText(sb.String()), nil
}
