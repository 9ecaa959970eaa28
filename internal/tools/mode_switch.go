package tools

import (
	"context"
	"strings"

	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// ModeSwitchTool handles the mode_switch MCP tool: activate a
// different persona by mode name. On success the whole descriptor —
// instructions, voice, tool subset — is swapped at once and pushed to
// the pipeline bridge; on any failure the current persona stays
// untouched.
type ModeSwitchTool struct {
	session *dialogue.Session
	bridge  PipelineBridge
}

// NewModeSwitchTool creates a ModeSwitchTool bound to the session.
func NewModeSwitchTool(session *dialogue.Session, bridge PipelineBridge) *ModeSwitchTool {
	return &ModeSwitchTool{session: session, bridge: bridge}
}

// Definition returns the MCP tool definition for registration.
func (t *ModeSwitchTool) Definition() mcp.Tool {
	modes := t.session.Personas.Modes()
	return mcp.NewTool("mode_switch",
		mcp.WithDescription(
			"Switch the conversation to a different mode when the user asks "+
				"for one. Changes the active persona's instructions and voice "+
				"together. Available modes: "+strings.Join(modes, ", ")+".",
		),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("The mode to switch to"),
			mcp.Enum(modes...),
		),
	)
}

// Handle processes the mode_switch tool call.
func (t *ModeSwitchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := strings.TrimSpace(req.GetString("mode", ""))
	if mode == "" {
		return mcp.NewToolResultError("'mode' is required — one of: " +
			strings.Join(t.session.Personas.Modes(), ", ")), nil
	}

	d, err := t.session.Personas.Switch(mode)
	if err != nil {
		return mcp.NewToolResultError(advisory(err)), nil
	}
	notify(t.bridge, d)

	topic, hasTopic := t.session.Personas.CurrentTopic()
	return mcp.NewToolResultText(personaLine(d, topic, hasTopic)), nil
}
