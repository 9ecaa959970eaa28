package tools

import (
	"context"

	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// RestartTool handles the restart MCP tool: throw away the current
// record and begin with an empty one, keeping the persona state. Used
// by narrative agents when the player asks to start over.
type RestartTool struct {
	session *dialogue.Session
}

// NewRestartTool creates a RestartTool bound to the session.
func NewRestartTool(session *dialogue.Session) *RestartTool {
	return &RestartTool{session: session}
}

// Definition returns the MCP tool definition for registration.
func (t *RestartTool) Definition() mcp.Tool {
	return mcp.NewTool("restart",
		mcp.WithDescription(
			"Start the story over from the beginning, discarding the current "+
				"scene and inventory. Only use when the user explicitly asks to "+
				"restart.",
		),
	)
}

// Handle processes the restart tool call.
func (t *RestartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.session.Restart()
	return mcp.NewToolResultText(
		"The page turns... a new story begins. Set the opening scene again.",
	), nil
}
