// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools that depend on them. No business logic
// lives here — only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/puch-labs/habitflow/internal/config"
	"github.com/puch-labs/habitflow/internal/habit"
	"github.com/puch-labs/habitflow/internal/habittools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all habit tools
// registered. This is the single place where all dependencies are
// resolved.
//
// The returned cleanup function closes the habit store's database
// connection and must be called on shutdown (typically via defer).
func New() (*server.MCPServer, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, noop, fmt.Errorf("loading configuration: %w", err)
	}

	store, err := habit.New(habit.Config{
		DataDir:       cfg.DataDir,
		MaxNoteLength: cfg.MaxNoteLength,
	})
	if err != nil {
		return nil, noop, fmt.Errorf("opening habit store: %w", err)
	}
	cleanup := func() { _ = store.Close() }

	s := server.NewMCPServer(
		"habitflow",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Habit lifecycle tools ---

	createTool := habittools.NewCreateHabitTool(store)
	s.AddTool(createTool.Definition(), createTool.Handle)

	logTool := habittools.NewLogHabitTool(store)
	s.AddTool(logTool.Definition(), logTool.Handle)

	listTool := habittools.NewGetHabitsTool(store)
	s.AddTool(listTool.Definition(), listTool.Handle)

	updateTool := habittools.NewUpdateHabitTool(store)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	archiveTool := habittools.NewArchiveHabitTool(store)
	s.AddTool(archiveTool.Definition(), archiveTool.Handle)

	// --- Analytics & motivation tools ---

	progressTool := habittools.NewProgressTool(store)
	s.AddTool(progressTool.Definition(), progressTool.Handle)

	analyticsTool := habittools.NewAnalyticsTool(store, cfg.WindowDays)
	s.AddTool(analyticsTool.Definition(), analyticsTool.Handle)

	insightsTool := habittools.NewInsightsTool(store)
	s.AddTool(insightsTool.Definition(), insightsTool.Handle)

	templatesTool := habittools.NewTemplatesTool()
	s.AddTool(templatesTool.Definition(), templatesTool.Handle)

	shareTool := habittools.NewShareProgressTool(store)
	s.AddTool(shareTool.Definition(), shareTool.Handle)

	// --- Platform validation ---

	validateTool := habittools.NewValidateTool(cfg.OwnerNumber)
	s.AddTool(validateTool.Definition(), validateTool.Handle)

	return s, cleanup, nil
}

// noop is the default cleanup when initialization fails before the
// store is opened.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to act as a habit coach.
func serverInstructions() string {
	return `You have access to HabitFlow, a habit tracking MCP server.

## Your Role
Act as a supportive habit coach. Users talk about their habits in plain
language; you translate that into tool calls and respond warmly.

## WHEN TO USE THE TOOLS
- "I want to start doing X every day" → create_habit
- "I did my meditation today" / "log my workout for yesterday" → log_habit
- "Show my habits" / "how am I doing?" → get_habits
- "How's my reading streak?" → get_habit_progress
- "Give me my stats" → get_analytics
- "I need some motivation" → get_insights
- "What habits should I start?" → get_habit_templates
- "Make something I can post" → get_shareable_progress
- "I'm done with this habit" → archive_habit
- "Rename my habit" → update_habit

## How Logging Works
- Completions are per UTC calendar day (YYYY-MM-DD). Omit the date to log today.
- Logging the same day twice is harmless: the first entry is kept unchanged.
- Every log response includes the updated streak — relay it to the user,
  celebrate milestones (7, 30, 100 days).

## Finding Habit IDs
Tools that act on one habit need its ID. Call get_habits first to look up
the ID by name — never ask the user to remember IDs.

## Tone
Encouraging and concrete. When a streak breaks, focus on restarting, not
on the loss. Suggest get_habit_templates when a user seems unsure what
to track.`
}
