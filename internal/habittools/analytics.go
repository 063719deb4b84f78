package habittools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puch-labs/habitflow/internal/habit"
)

// AnalyticsTool handles the get_analytics MCP tool.
type AnalyticsTool struct {
	store      *habit.Store
	windowDays int
}

// NewAnalyticsTool creates an AnalyticsTool. windowDays is the trailing
// window for completion-rate aggregation (0 means the configured default).
func NewAnalyticsTool(store *habit.Store, windowDays int) *AnalyticsTool {
	return &AnalyticsTool{store: store, windowDays: windowDays}
}

// Definition returns the MCP tool definition for get_analytics.
func (t *AnalyticsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_analytics",
		mcp.WithDescription(
			"Overall analytics across all active habits: totals, today's progress, "+
				"category breakdown, and top streaks. Read-only.",
		),
	)
}

// Handle processes the get_analytics tool call.
func (t *AnalyticsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := t.store.Analytics(t.windowDays)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute analytics: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("📊 **Your Habit Analytics**\n\n")
	fmt.Fprintf(&sb, "🎯 Active habits: %d\n", snap.TotalHabits)
	fmt.Fprintf(&sb, "✅ Total completions: %d\n", snap.TotalCompletions)
	fmt.Fprintf(&sb, "📈 Today: %d/%d (%.1f%%)\n", snap.TodayCompleted, snap.TotalHabits, snap.TodayRate)
	fmt.Fprintf(&sb, "🗓 Last %d days: %.1f%% completion\n", snap.WindowDays, snap.WindowRate)
	fmt.Fprintf(&sb, "🔥 Average streak: %.1f\n", snap.AverageStreak)

	if len(snap.Categories) > 0 {
		sb.WriteString("\n📂 **Categories:**\n")
		names := make([]string, 0, len(snap.Categories))
		for name := range snap.Categories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "  • %s: %d\n", name, snap.Categories[name])
		}
	}

	if len(snap.TopStreaks) > 0 {
		sb.WriteString("\n🏆 **Top Streaks:**\n")
		for _, ts := range snap.TopStreaks {
			fmt.Fprintf(&sb, "  • %s: %d\n", ts.Name, ts.Current)
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}
