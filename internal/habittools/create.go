package habittools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puch-labs/habitflow/internal/habit"
)

// CreateHabitTool handles the create_habit MCP tool.
type CreateHabitTool struct {
	store *habit.Store
}

// NewCreateHabitTool creates a CreateHabitTool with the given store.
func NewCreateHabitTool(store *habit.Store) *CreateHabitTool {
	return &CreateHabitTool{store: store}
}

// Definition returns the MCP tool definition for create_habit.
func (t *CreateHabitTool) Definition() mcp.Tool {
	return mcp.NewTool("create_habit",
		mcp.WithDescription(
			"Create a new habit to track. Use when the user wants to start tracking a new habit or behavior. "+
				"Assigns a unique ID the user will need for logging completions.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the habit (e.g. 'Morning Meditation')"),
		),
		mcp.WithString("description",
			mcp.Description("What the habit involves"),
		),
		mcp.WithString("category",
			mcp.Description("Category (e.g. health, productivity, learning, mindfulness)"),
		),
		mcp.WithString("frequency",
			mcp.Description("Target cadence: 'daily' (default) or 'weekly'"),
		),
		mcp.WithNumber("times_per_week",
			mcp.Description("For weekly habits: completions needed per week (default 1)"),
		),
	)
}

// Handle processes the create_habit tool call.
func (t *CreateHabitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h, err := t.store.CreateHabit(habit.CreateHabitParams{
		Name:         req.GetString("name", ""),
		Description:  req.GetString("description", ""),
		Category:     req.GetString("category", ""),
		Frequency:    req.GetString("frequency", "daily"),
		TimesPerWeek: intArg(req, "times_per_week", 0),
	})
	if err != nil {
		if errors.Is(err, habit.ErrValidation) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to create habit: %v", err)), nil
	}

	response := fmt.Sprintf("✅ Created habit %q (%s)\nID: %s\n🎯 Ready to start tracking!", h.Name, h.Cadence, h.ID)
	return mcp.NewToolResultText(response), nil
}
