package habittools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puch-labs/habitflow/internal/habit"
)

// ArchiveHabitTool handles the archive_habit MCP tool.
type ArchiveHabitTool struct {
	store *habit.Store
}

// NewArchiveHabitTool creates an ArchiveHabitTool with the given store.
func NewArchiveHabitTool(store *habit.Store) *ArchiveHabitTool {
	return &ArchiveHabitTool{store: store}
}

// Definition returns the MCP tool definition for archive_habit.
func (t *ArchiveHabitTool) Definition() mcp.Tool {
	return mcp.NewTool("archive_habit",
		mcp.WithDescription(
			"Archive a habit the user no longer tracks, or restore it. Archived habits keep their "+
				"history but drop out of listings and analytics.",
		),
		mcp.WithString("habit_id",
			mcp.Required(),
			mcp.Description("ID of the habit"),
		),
		mcp.WithBoolean("restore",
			mcp.Description("Set true to bring an archived habit back to active"),
		),
	)
}

// Handle processes the archive_habit tool call.
func (t *ArchiveHabitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID := req.GetString("habit_id", "")
	if habitID == "" {
		return mcp.NewToolResultError("'habit_id' is required"), nil
	}

	restore := boolArg(req, "restore", false)

	var err error
	if restore {
		err = t.store.RestoreHabit(habitID)
	} else {
		err = t.store.ArchiveHabit(habitID)
	}
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to update habit: %v", err)), nil
	}

	h, err := t.store.GetHabit(habitID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load habit: %v", err)), nil
	}

	if restore {
		return mcp.NewToolResultText(fmt.Sprintf("✅ Restored %q — it's active again.", h.Name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("🗄 Archived %q. Its history is preserved.", h.Name)), nil
}

// ─── UpdateHabitTool ────────────────────────────────────────────────────────

// UpdateHabitTool handles the update_habit MCP tool.
type UpdateHabitTool struct {
	store *habit.Store
}

// NewUpdateHabitTool creates an UpdateHabitTool with the given store.
func NewUpdateHabitTool(store *habit.Store) *UpdateHabitTool {
	return &UpdateHabitTool{store: store}
}

// Definition returns the MCP tool definition for update_habit.
func (t *UpdateHabitTool) Definition() mcp.Tool {
	return mcp.NewTool("update_habit",
		mcp.WithDescription(
			"Edit a habit's name, description, or category. Omitted fields are left unchanged.",
		),
		mcp.WithString("habit_id",
			mcp.Required(),
			mcp.Description("ID of the habit"),
		),
		mcp.WithString("name",
			mcp.Description("New name"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("category",
			mcp.Description("New category"),
		),
	)
}

// Handle processes the update_habit tool call.
func (t *UpdateHabitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID := req.GetString("habit_id", "")
	if habitID == "" {
		return mcp.NewToolResultError("'habit_id' is required"), nil
	}

	var params habit.UpdateHabitParams
	args := req.GetArguments()
	if v, ok := args["name"].(string); ok {
		params.Name = &v
	}
	if v, ok := args["description"].(string); ok {
		params.Description = &v
	}
	if v, ok := args["category"].(string); ok {
		params.Category = &v
	}
	if params.Name == nil && params.Description == nil && params.Category == nil {
		return mcp.NewToolResultError("nothing to update: pass name, description, or category"), nil
	}

	h, err := t.store.UpdateHabit(habitID, params)
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) || errors.Is(err, habit.ErrValidation) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to update habit: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("✅ Updated %q (ID: %s)", h.Name, h.ID)), nil
}
