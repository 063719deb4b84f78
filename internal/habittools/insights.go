package habittools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puch-labs/habitflow/internal/habit"
)

// motivationalTips rotate through the insights response, one per calendar day.
var motivationalTips = []string{
	"💡 Tip: Stack your habits together — do meditation right after your morning coffee!",
	"🎯 Remember: Progress beats perfection. Consistency is the real superpower!",
	"🌱 Small daily improvements lead to stunning yearly results!",
	"⚡ Your habits are votes for the person you're becoming!",
	"🏆 Champions aren't made in comfort zones — you're doing great!",
}

// InsightsTool handles the get_insights MCP tool. Insights are rule-based
// text derived from the analytics snapshot — no model calls involved.
type InsightsTool struct {
	store *habit.Store
}

// NewInsightsTool creates an InsightsTool with the given store.
func NewInsightsTool(store *habit.Store) *InsightsTool {
	return &InsightsTool{store: store}
}

// Definition returns the MCP tool definition for get_insights.
func (t *InsightsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_insights",
		mcp.WithDescription(
			"Motivational insights and encouragement based on the user's habits, streaks, "+
				"and today's progress. Use when the user needs motivation or habit advice. Read-only.",
		),
	)
}

// Handle processes the get_insights tool call.
func (t *InsightsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := t.store.Analytics(0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute analytics: %v", err)), nil
	}

	if snap.TotalHabits == 0 {
		return mcp.NewToolResultText("🌱 Start tracking some habits to get personalized insights!"), nil
	}

	insights := buildInsights(snap)

	// Rotate the tip by calendar day so repeated calls on the same day agree.
	today, _ := habit.ParseDay(t.store.Today())
	insights = append(insights, motivationalTips[today.YearDay()%len(motivationalTips)])

	return mcp.NewToolResultText(strings.Join(insights, "\n\n")), nil
}

// buildInsights applies the motivational rules to an analytics snapshot.
func buildInsights(snap *habit.AnalyticsSnapshot) []string {
	var insights []string

	switch rate := snap.TodayRate; {
	case rate == 100:
		insights = append(insights, "🎉 Perfect day! You've completed all your habits today! You're unstoppable!")
	case rate >= 80:
		insights = append(insights, fmt.Sprintf("💪 Outstanding! You're at %.1f%% today. You're building incredible momentum!", rate))
	case rate >= 50:
		insights = append(insights, fmt.Sprintf("📈 You're over halfway at %.1f%%! Every small step is progress worth celebrating!", rate))
	default:
		insights = append(insights, fmt.Sprintf("🌱 Fresh opportunities ahead! You're at %.1f%% — there's still time to turn today around.", rate))
	}

	best := 0
	bestName := ""
	for _, ts := range snap.TopStreaks {
		if ts.Current > best {
			best = ts.Current
			bestName = ts.Name
		}
	}
	switch {
	case best >= 30:
		insights = append(insights, fmt.Sprintf("🔥 Incredible! Your %d-period streak on %q shows you're a true habit master!", best, bestName))
	case best >= 7:
		insights = append(insights, fmt.Sprintf("✨ Your %d-period streak on %q proves you're developing real consistency!", best, bestName))
	case best >= 1:
		insights = append(insights, fmt.Sprintf("🌟 You've got a %d-period streak going on %q — keep the momentum alive!", best, bestName))
	}

	if len(snap.Categories) > 0 {
		top, n := "", 0
		for name, count := range snap.Categories {
			if count > n || (count == n && name < top) {
				top, n = name, count
			}
		}
		insights = append(insights, fmt.Sprintf("🎯 You're prioritizing %s habits — smart focus for maximum impact!", top))
	}

	if snap.TotalHabits >= 5 {
		insights = append(insights, "🚀 Tracking multiple habits shows serious commitment to growth — you're leveling up!")
	} else {
		insights = append(insights, "🌟 Every expert started with one habit. You're building something amazing!")
	}

	return insights
}
