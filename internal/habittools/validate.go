package habittools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ValidateTool handles the validate MCP tool. The hosting platform calls it
// once when pairing the server to a user account; it returns the owner's
// configured phone number. Token checking itself is the host's concern.
type ValidateTool struct {
	ownerNumber string
}

// NewValidateTool creates a ValidateTool returning the given owner number.
func NewValidateTool(ownerNumber string) *ValidateTool {
	return &ValidateTool{ownerNumber: ownerNumber}
}

// Definition returns the MCP tool definition for validate.
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("validate",
		mcp.WithDescription(
			"Validation tool required by the hosting platform. Returns the server owner's number.",
		),
	)
}

// Handle processes the validate tool call.
func (t *ValidateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.ownerNumber == "" {
		return mcp.NewToolResultError("server owner number is not configured (set HABITFLOW_OWNER_NUMBER)"), nil
	}
	return mcp.NewToolResultText(t.ownerNumber), nil
}
