package tools

import (
	"context"
	"strings"

	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// ClearTool handles the task_clear MCP tool, the only way a recorded
// value is ever removed. Omitting an argument on task_update keeps the
// old value; clearing must be this explicit.
type ClearTool struct {
	session *dialogue.Session
}

// NewClearTool creates a ClearTool bound to the session.
func NewClearTool(session *dialogue.Session) *ClearTool {
	return &ClearTool{session: session}
}

// Definition returns the MCP tool definition for registration.
func (t *ClearTool) Definition() mcp.Tool {
	return mcp.NewTool("task_clear",
		mcp.WithDescription(
			"Explicitly reset one field back to unset, e.g. when the user "+
				"changes their mind ('actually, no whipped cream'). This is the "+
				"only operation that removes a recorded value.",
		),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("The field to reset"),
			mcp.Enum(t.session.Record.Schema().Names()...),
		),
	)
}

// Handle processes the task_clear tool call.
func (t *ClearTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	field := strings.TrimSpace(req.GetString("field", ""))
	if field == "" {
		return mcp.NewToolResultError("'field' is required — the field to reset"), nil
	}

	if err := t.session.Record.Clear(field); err != nil {
		return mcp.NewToolResultError(advisory(err)), nil
	}

	return mcp.NewToolResultText(
		"Cleared " + field + ". " + progressLine(t.session.Record),
	), nil
}
