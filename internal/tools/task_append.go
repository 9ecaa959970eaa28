package tools

import (
	"context"
	"strings"

	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// AppendTool handles the task_append MCP tool: add one entry to a
// list field, keeping whatever is already there.
type AppendTool struct {
	session *dialogue.Session
}

// NewAppendTool creates an AppendTool bound to the session.
func NewAppendTool(session *dialogue.Session) *AppendTool {
	return &AppendTool{session: session}
}

// Definition returns the MCP tool definition for registration.
// When the schema declares exactly one list field, the field parameter
// is optional and defaults to it — the common single-list agents just
// pass the value.
func (t *AppendTool) Definition() mcp.Tool {
	lists := t.session.Record.Schema().ListNames()

	fieldOpts := []mcp.PropertyOption{
		mcp.Description("The list field to add to"),
		mcp.Enum(lists...),
	}
	if len(lists) != 1 {
		fieldOpts = append(fieldOpts, mcp.Required())
	}

	return mcp.NewTool("task_append",
		mcp.WithDescription(
			"Add one entry to a list field (e.g. an extra, a goal, an item). "+
				"Entries accumulate in the order they were added; nothing is "+
				"deduplicated or removed.",
		),
		mcp.WithString("field", fieldOpts...),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("The entry to add"),
		),
	)
}

// Handle processes the task_append tool call.
func (t *AppendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lists := t.session.Record.Schema().ListNames()
	defaultField := ""
	if len(lists) == 1 {
		defaultField = lists[0]
	}

	field := req.GetString("field", defaultField)
	if field == "" {
		return mcp.NewToolResultError("'field' is required — one of: " + strings.Join(lists, ", ")), nil
	}
	value := strings.TrimSpace(req.GetString("value", ""))
	if value == "" {
		return mcp.NewToolResultError("'value' is required — the entry to add"), nil
	}

	if err := t.session.Record.Append(field, value); err != nil {
		return mcp.NewToolResultError(advisory(err)), nil
	}

	entries := t.session.Record.List(field)
	return mcp.NewToolResultText(
		"Added " + value + " to " + field + " (now: " + strings.Join(entries, ", ") + "). " +
			progressLine(t.session.Record),
	), nil
}
