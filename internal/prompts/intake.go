// Package prompts implements the MCP prompt handlers.
//
// MCP prompts are user-triggered workflows (like slash commands).
// Unlike tools, which the model calls on its own, a prompt is how the
// user kicks a conversation off.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xzone2486/Murf/internal/agents"
	"github.com/mark3labs/mcp-go/mcp"
)

// IntakePrompt handles the murf-intake MCP prompt: open a conversation
// as the configured agent, starting from its greeting.
type IntakePrompt struct {
	agent agents.Agent
}

// NewIntakePrompt creates an IntakePrompt for the serving agent.
func NewIntakePrompt(agent agents.Agent) *IntakePrompt {
	return &IntakePrompt{agent: agent}
}

// Definition returns the MCP prompt definition for registration.
func (p *IntakePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("murf-intake",
		mcp.WithPromptDescription(fmt.Sprintf(
			"Start a conversation with the %s agent, opening with its greeting "+
				"and working through the task turn by turn.", p.agent.Label,
		)),
		mcp.WithArgument("caller_name",
			mcp.ArgumentDescription("Name of the person calling in, if known"),
		),
	)
}

// Handle processes the murf-intake prompt request.
func (p *IntakePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	caller := ""
	if args := req.Params.Arguments; args != nil {
		caller = strings.TrimSpace(args["caller_name"])
	}

	intro := "I'm calling in."
	if caller != "" {
		intro = fmt.Sprintf("I'm calling in — my name is %s.", caller)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Start a %s conversation", p.agent.Label),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"%s\n\n"+
						"Please:\n"+
						"1. Greet me exactly like this: %q\n"+
						"2. Work through the task one question at a time, recording what I "+
						"tell you with the task tools as soon as I say it\n"+
						"3. Recap with `task_status` and confirm with me before calling "+
						"`task_finalize`\n"+
						"4. Keep every reply short and natural — this is a voice conversation",
					intro, p.agent.RenderGreeting(),
				)),
			},
		},
	}, nil
}
