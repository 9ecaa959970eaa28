package tools

import (
	"context"
	"strings"

	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// TopicSelectTool handles the topic_select MCP tool: resolve the
// user's spoken topic request against the declared topic titles and
// make the match current. Matching is case-insensitive substring
// containment in declared order, first match wins.
type TopicSelectTool struct {
	session *dialogue.Session
	bridge  PipelineBridge
}

// NewTopicSelectTool creates a TopicSelectTool bound to the session.
func NewTopicSelectTool(session *dialogue.Session, bridge PipelineBridge) *TopicSelectTool {
	return &TopicSelectTool{session: session, bridge: bridge}
}

// Definition returns the MCP tool definition for registration.
func (t *TopicSelectTool) Definition() mcp.Tool {
	return mcp.NewTool("topic_select",
		mcp.WithDescription(
			"Select the topic the user wants, by name or close enough — "+
				"'loop' finds 'Loops'. When no topic matches, relay the error "+
				"as a clarifying question; the current topic stays unchanged.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("The topic the user asked for, as they said it"),
		),
	)
}

// Handle processes the topic_select tool call.
func (t *TopicSelectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	request := strings.TrimSpace(req.GetString("topic", ""))
	if request == "" {
		return mcp.NewToolResultError("'topic' is required — the topic the user asked for"), nil
	}

	d, err := t.session.Personas.SelectTopic(request)
	if err != nil {
		return mcp.NewToolResultError(advisory(err) + " Ask the user which of those they would like."), nil
	}
	notify(t.bridge, d)

	topic, _ := t.session.Personas.CurrentTopic()
	return mcp.NewToolResultText(personaLine(d, topic, true)), nil
}
