package tools

import (
	"context"
	"fmt"

	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatusTool handles the task_status MCP tool: a read-only view of the
// record so the model can recap before finalizing. No mutation.
type StatusTool struct {
	session *dialogue.Session
}

// NewStatusTool creates a StatusTool bound to the session.
func NewStatusTool(session *dialogue.Session) *StatusTool {
	return &StatusTool{session: session}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("task_status",
		mcp.WithDescription(
			"Show the task so far: every field and its current value, which "+
				"required details are still missing, and whether the task has "+
				"already been finalized. Read-only — changes nothing.",
		),
	)
}

// Handle processes the task_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec := t.session.Record

	if rec.Finalized() {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Task so far (finalized — no further changes possible):\n%s",
			rec.Summary(),
		)), nil
	}

	filled, total := rec.Progress()
	return mcp.NewToolResultText(fmt.Sprintf(
		"Task so far (%d of %d required details recorded):\n%s\n\n%s",
		filled, total, rec.Summary(), progressLine(rec),
	)), nil
}
