package tools

import (
	"context"
	"fmt"

	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// FinalizeTool handles the task_finalize MCP tool: the one-time
// durable write of a completed record. Safe to call twice — a second
// invocation returns the result of the first without writing again.
type FinalizeTool struct {
	session *dialogue.Session
}

// NewFinalizeTool creates a FinalizeTool bound to the session.
func NewFinalizeTool(session *dialogue.Session) *FinalizeTool {
	return &FinalizeTool{session: session}
}

// Definition returns the MCP tool definition for registration.
func (t *FinalizeTool) Definition() mcp.Tool {
	return mcp.NewTool("task_finalize",
		mcp.WithDescription(
			"Confirm and durably save the completed task. Call only after the "+
				"user has confirmed all the details. Fails with the list of "+
				"missing fields when the task is incomplete; calling it again on "+
				"an already-finalized task is harmless.",
		),
	)
}

// Handle processes the task_finalize tool call.
func (t *FinalizeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	already := t.session.Record.Finalized()

	result, err := t.session.Finalize()
	if err != nil {
		return mcp.NewToolResultError(advisory(err)), nil
	}

	if already {
		return mcp.NewToolResultText(fmt.Sprintf(
			"This task was already finalized as %s — nothing was written again.\n\n%s",
			result.ID, result.Summary,
		)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Task finalized and saved as %s (%s).\n\n%s\n\nLet the user know everything is confirmed.",
		result.ID, result.Location, result.Summary,
	)), nil
}
