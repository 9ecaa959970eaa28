// Package resources implements the MCP resource handlers.
//
// Resources are read-only data the host can pull for context: the
// agent catalog and the live state of the running session. They use
// URI-based addressing (murf://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Xzone2486/Murf/internal/agents"
	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler serves the murf:// resource endpoints.
type Handler struct {
	agents  []agents.Agent
	agent   agents.Agent
	session *dialogue.Session
}

// NewHandler creates a resource Handler for the serving agent and its
// session, with the full agent catalog for discovery.
func NewHandler(all []agents.Agent, agent agents.Agent, session *dialogue.Session) *Handler {
	return &Handler{agents: all, agent: agent, session: session}
}

// AgentsResource returns the MCP resource definition for the agent
// catalog.
func (h *Handler) AgentsResource() mcp.Resource {
	return mcp.NewResource(
		"murf://agents",
		"Agent Catalog",
		mcp.WithResourceDescription("Every available voice agent: name, label, modes, and topics"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleAgents returns the agent catalog as JSON.
func (h *Handler) HandleAgents(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	type agentView struct {
		Name   string   `json:"name"`
		Label  string   `json:"label"`
		Modes  []string `json:"modes"`
		Topics []string `json:"topics,omitempty"`
	}

	views := make([]agentView, len(h.agents))
	for i, a := range h.agents {
		v := agentView{Name: a.Name, Label: a.Label}
		for _, p := range a.Personas {
			v.Modes = append(v.Modes, p.Mode)
		}
		for _, t := range a.Topics {
			v.Topics = append(v.Topics, t.Title)
		}
		views[i] = v
	}

	return jsonResource(req.Params.URI, views)
}

// StatusResource returns the MCP resource definition for session
// status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"murf://session/status",
		"Session Status",
		mcp.WithResourceDescription("Current task record, missing fields, and active persona"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the live session state as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	active := h.session.Personas.Active()

	missing := h.session.Record.MissingFields()
	if missing == nil {
		missing = []string{}
	}

	status := map[string]any{
		"session_id": h.session.ID,
		"agent":      h.agent.Name,
		"finalized":  h.session.Record.Finalized(),
		"fields":     recordFields(h.session.Record),
		"missing":    missing,
		"persona": map[string]any{
			"mode":  active.Mode,
			"voice": active.Voice,
		},
	}
	if topic, ok := h.session.Personas.CurrentTopic(); ok {
		status["topic"] = topic.Title
	}

	return jsonResource(req.Params.URI, status)
}

// recordFields renders the record's current values keyed by field name.
// Unset scalars are omitted; unset lists surface as empty arrays.
func recordFields(rec *dialogue.Record) map[string]any {
	fields := make(map[string]any)
	for _, f := range rec.Schema() {
		if f.Kind == dialogue.KindList {
			vals := rec.List(f.Name)
			if vals == nil {
				vals = []string{}
			}
			fields[f.Name] = vals
			continue
		}
		if v, ok := rec.Scalar(f.Name); ok {
			fields[f.Name] = v
		}
	}
	return fields
}

// jsonResource marshals v as an indented JSON resource body.
func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
