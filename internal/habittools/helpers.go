// Package habittools provides the MCP tool handlers for habit tracking.
//
// Each tool handler follows the same pattern:
// - A struct with dependencies (habit.Store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Domain errors (validation, unknown habit) are reported as tool-result
// errors, never as Go errors — the transport stays healthy.
package habittools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puch-labs/habitflow/internal/habit"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// streakLine renders a streak for tool responses, naming the period unit
// by cadence.
func streakLine(c habit.Cadence, st habit.StreakState) string {
	unit := "days"
	if c.Kind == habit.CadenceWeekly {
		unit = "weeks"
	}
	line := fmt.Sprintf("🔥 Current streak: %d %s (longest: %d)", st.Current, unit, st.Longest)
	if st.LastCompleted != "" {
		line += fmt.Sprintf(", last completed %s", st.LastCompleted)
	}
	return line
}

// summarizeHabit renders one habit as a markdown block for listings.
func summarizeHabit(h habit.HabitWithStreak) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** (ID: %s)\n", h.Name, h.ID)
	if h.Category != "" {
		fmt.Fprintf(&sb, "  📂 Category: %s\n", h.Category)
	}
	fmt.Fprintf(&sb, "  🎯 Target: %s\n", h.Cadence)
	fmt.Fprintf(&sb, "  %s\n", streakLine(h.Cadence, h.Streak))
	fmt.Fprintf(&sb, "  ✅ Total completions: %d\n", h.TotalCompletions)
	if h.Description != "" {
		fmt.Fprintf(&sb, "  📝 %s\n", h.Description)
	}
	return sb.String()
}
