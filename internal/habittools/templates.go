package habittools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// habitTemplate is one starter habit in the catalog.
type habitTemplate struct {
	Name        string
	Description string
	Frequency   string
}

// templateCatalog is the static catalog of popular starter habits,
// grouped by category.
var templateCatalog = []struct {
	Category string
	Habits   []habitTemplate
}{
	{
		Category: "health",
		Habits: []habitTemplate{
			{"Morning Workout", "30-minute exercise session", "daily"},
			{"10k Steps", "Walk 10,000 steps", "daily"},
			{"8 Hours Sleep", "Get quality sleep", "daily"},
			{"Drink Water", "8 glasses of water", "daily"},
		},
	},
	{
		Category: "productivity",
		Habits: []habitTemplate{
			{"Deep Work", "2 hours focused work", "daily"},
			{"Inbox Zero", "Clear email inbox", "daily"},
			{"Weekly Review", "Plan and review the week", "weekly"},
			{"Learn Something New", "30 minutes learning", "daily"},
		},
	},
	{
		Category: "mindfulness",
		Habits: []habitTemplate{
			{"Morning Meditation", "10-minute meditation", "daily"},
			{"Gratitude Journal", "Write 3 things you're grateful for", "daily"},
			{"Digital Detox", "1 hour without screens", "daily"},
			{"Nature Walk", "15-minute outdoor walk", "daily"},
		},
	},
	{
		Category: "learning",
		Habits: []habitTemplate{
			{"Read Daily", "20 pages of a book", "daily"},
			{"Language Practice", "15 minutes language learning", "daily"},
			{"Skill Building", "Practice a skill", "daily"},
			{"Listen to Podcast", "Educational podcast", "daily"},
		},
	},
}

// TemplatesTool handles the get_habit_templates MCP tool.
type TemplatesTool struct{}

// NewTemplatesTool creates a TemplatesTool.
func NewTemplatesTool() *TemplatesTool {
	return &TemplatesTool{}
}

// Definition returns the MCP tool definition for get_habit_templates.
func (t *TemplatesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_habit_templates",
		mcp.WithDescription(
			"Popular habit templates for quick setup. Use when the user wants pre-made habit ideas. Read-only.",
		),
	)
}

// Handle processes the get_habit_templates tool call.
func (t *TemplatesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString("🎯 **Popular Habit Templates**\n\n")
	for _, group := range templateCatalog {
		fmt.Fprintf(&sb, "**%s:**\n", titleCase(group.Category))
		for _, h := range group.Habits {
			fmt.Fprintf(&sb, "  • %s: %s (%s)\n", h.Name, h.Description, h.Frequency)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("💡 **To use a template, say:**\n")
	sb.WriteString("\"Create a habit called Morning Workout in health category for daily 30-minute exercise\"\n")
	sb.WriteString("\"Set up a Gratitude Journal habit for daily mindfulness practice\"\n")

	return mcp.NewToolResultText(sb.String()), nil
}

// titleCase upper-cases the first letter of an ASCII word.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
