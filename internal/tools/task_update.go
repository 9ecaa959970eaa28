package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// UpdateTool handles the task_update MCP tool.
// Its parameters are generated from the session's field schema: one
// optional string parameter per scalar field, so the model records
// exactly the details the caller just provided. An omitted parameter
// never clears a previously recorded value.
type UpdateTool struct {
	session *dialogue.Session
}

// NewUpdateTool creates an UpdateTool bound to the session.
func NewUpdateTool(session *dialogue.Session) *UpdateTool {
	return &UpdateTool{session: session}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Record task details as the user provides them. " +
				"Pass only the fields the user just mentioned — omitted fields keep " +
				"their current value. Use task_append for list fields and task_clear " +
				"to explicitly reset a field.",
		),
	}
	for _, f := range t.session.Record.Schema() {
		if f.Kind != dialogue.KindScalar {
			continue
		}
		desc := f.Description
		if desc == "" {
			desc = "Value for the " + f.Name + " field"
		}
		opts = append(opts, mcp.WithString(f.Name, mcp.Description(desc)))
	}
	return mcp.NewTool("task_update", opts...)
}

// Handle processes the task_update tool call.
func (t *UpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec := t.session.Record

	var recorded []string
	for _, f := range rec.Schema() {
		if f.Kind != dialogue.KindScalar {
			continue
		}
		value := strings.TrimSpace(req.GetString(f.Name, ""))
		if value == "" {
			continue
		}
		if err := rec.Set(f.Name, value); err != nil {
			return mcp.NewToolResultError(advisory(err)), nil
		}
		recorded = append(recorded, fmt.Sprintf("%s = %s", f.Name, value))
	}

	if len(recorded) == 0 {
		return mcp.NewToolResultText(
			"Nothing recorded — no field values were provided. " + progressLine(rec),
		), nil
	}

	return mcp.NewToolResultText(
		"Recorded: " + strings.Join(recorded, "; ") + ". " + progressLine(rec),
	), nil
}
