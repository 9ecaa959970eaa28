package tools

import (
	"context"

	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// TopicNextTool handles the topic_next MCP tool: advance to the
// following topic, wrapping back to the first one past the end.
type TopicNextTool struct {
	session *dialogue.Session
	bridge  PipelineBridge
}

// NewTopicNextTool creates a TopicNextTool bound to the session.
func NewTopicNextTool(session *dialogue.Session, bridge PipelineBridge) *TopicNextTool {
	return &TopicNextTool{session: session, bridge: bridge}
}

// Definition returns the MCP tool definition for registration.
func (t *TopicNextTool) Definition() mcp.Tool {
	return mcp.NewTool("topic_next",
		mcp.WithDescription(
			"Move on to the next topic in order. After the last topic this "+
				"wraps around to the first one again.",
		),
	)
}

// Handle processes the topic_next tool call.
func (t *TopicNextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := t.session.Personas.NextTopic()
	if err != nil {
		return mcp.NewToolResultError(advisory(err)), nil
	}
	notify(t.bridge, d)

	topic, _ := t.session.Personas.CurrentTopic()
	return mcp.NewToolResultText(personaLine(d, topic, true)), nil
}
