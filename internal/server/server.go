// Package server wires one agent's session, stores, tools, prompts and
// resources into an MCP server instance.
//
// This is the composition root (DIP): it resolves the agent
// configuration, creates the concrete session and stores, and injects
// them into the tool handlers. No business logic lives here — only
// wiring. One server process serves one conversation, so the session
// state it builds is owned outright and needs no locking.
package server

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Xzone2486/Murf/internal/agents"
	"github.com/Xzone2486/Murf/internal/cases"
	"github.com/Xzone2486/Murf/internal/casetools"
	"github.com/Xzone2486/Murf/internal/dialogue"
	"github.com/Xzone2486/Murf/internal/prompts"
	"github.com/Xzone2486/Murf/internal/resources"
	"github.com/Xzone2486/Murf/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config holds server configuration.
type Config struct {
	// DataDir is where finalized records, the case database, and
	// user-defined agent files live.
	DataDir string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir: filepath.Join(home, ".murf-agent"),
	}
}

// New creates the MCP server for the named agent using the default
// configuration. See NewWithConfig.
func New(agentName string) (*server.MCPServer, func(), error) {
	return NewWithConfig(agentName, DefaultConfig())
}

// NewWithConfig creates and configures the MCP server for one agent:
// its session, its record store, and exactly the tool subset its
// configuration calls for. The returned cleanup function closes the
// case database when one was opened; it is always non-nil and safe to
// call even on a partially failed setup.
func NewWithConfig(agentName string, cfg Config) (*server.MCPServer, func(), error) {
	// --- Resolve the agent ---

	all, err := agents.All(filepath.Join(cfg.DataDir, "agents"))
	if err != nil {
		return nil, noop, fmt.Errorf("loading agents: %w", err)
	}
	agent, ok := agents.Find(all, agentName)
	if !ok {
		names := make([]string, len(all))
		for i, a := range all {
			names[i] = a.Name
		}
		return nil, noop, fmt.Errorf("unknown agent %q: available agents: %s",
			agentName, strings.Join(names, ", "))
	}

	// --- Create the session and its stores ---

	session, err := dialogue.NewSession(agent.Schema, agent.Personas, agent.Topics,
		agent.Store(cfg.DataDir))
	if err != nil {
		return nil, noop, fmt.Errorf("creating session: %w", err)
	}
	log.Printf("session %s started for agent %q", session.ID, agent.Name)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"murf-agent",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions(agent, session, cfg.DataDir)),
	)

	// --- Register task tools ---
	//
	// Tools follow the schema: no update tool without scalar fields, no
	// append tool without list fields, no finalize without a record
	// store. The model only ever sees operations that can succeed.

	bridge := logBridge{}
	schema := session.Record.Schema()

	if len(schema) > 0 {
		if len(schema) > len(schema.ListNames()) {
			updateTool := tools.NewUpdateTool(session)
			s.AddTool(updateTool.Definition(), updateTool.Handle)
		}
		if len(schema.ListNames()) > 0 {
			appendTool := tools.NewAppendTool(session)
			s.AddTool(appendTool.Definition(), appendTool.Handle)
		}

		clearTool := tools.NewClearTool(session)
		s.AddTool(clearTool.Definition(), clearTool.Handle)

		statusTool := tools.NewStatusTool(session)
		s.AddTool(statusTool.Definition(), statusTool.Handle)
	}

	if session.HasStore() {
		finalizeTool := tools.NewFinalizeTool(session)
		s.AddTool(finalizeTool.Definition(), finalizeTool.Handle)
	}

	if agent.RestartTool {
		restartTool := tools.NewRestartTool(session)
		s.AddTool(restartTool.Definition(), restartTool.Handle)
	}

	// --- Register persona tools ---

	if len(agent.Personas) > 1 {
		modeSwitchTool := tools.NewModeSwitchTool(session, bridge)
		s.AddTool(modeSwitchTool.Definition(), modeSwitchTool.Handle)
	}
	if session.Personas.HasTopics() {
		topicSelectTool := tools.NewTopicSelectTool(session, bridge)
		s.AddTool(topicSelectTool.Definition(), topicSelectTool.Handle)

		topicNextTool := tools.NewTopicNextTool(session, bridge)
		s.AddTool(topicNextTool.Definition(), topicNextTool.Handle)
	}

	// --- Register case tools ---
	//
	// The case database is an independent subsystem: if it fails to
	// open, the dialogue tools keep working. We log a warning and skip
	// case tool registration.

	cleanup := noop
	if agent.CaseTools {
		caseStore, caseErr := cases.New(cases.Config{DataDir: cfg.DataDir})
		if caseErr != nil {
			log.Printf("WARNING: case store disabled: %v", caseErr)
		} else {
			cleanup = func() {
				if err := caseStore.Close(); err != nil {
					log.Printf("WARNING: case store close: %v", err)
				}
			}

			lookupTool := casetools.NewLookupTool(caseStore)
			s.AddTool(lookupTool.Definition(), lookupTool.Handle)

			updateTool := casetools.NewUpdateTool(caseStore)
			s.AddTool(updateTool.Definition(), updateTool.Handle)
		}
	}

	// --- Register prompts ---

	intakePrompt := prompts.NewIntakePrompt(agent)
	s.AddPrompt(intakePrompt.Definition(), intakePrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(all, agent, session)
	s.AddResource(resourceHandler.AgentsResource(), resourceHandler.HandleAgents)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used when no case store was opened.
func noop() {}

// logBridge is the default PipelineBridge: it logs persona changes to
// stderr. A real speech runtime embedding this server would install
// its own bridge and push the new voice and instructions to the TTS
// layer.
type logBridge struct{}

func (logBridge) PersonaChanged(d dialogue.Descriptor) {
	log.Printf("persona changed: mode=%s voice=%s", d.Mode, d.Voice)
}

// serverInstructions assembles the opening instructions: the active
// persona's text, the greeting to open with, and — for journal-backed
// agents — a memory line recalled from the previous entry.
func serverInstructions(agent agents.Agent, session *dialogue.Session, dataDir string) string {
	var b strings.Builder
	b.WriteString(session.Personas.Active().Instructions)
	b.WriteString("\n\nOpen the conversation with: ")
	b.WriteString(agent.RenderGreeting())

	if journal, ok := agent.Journal(dataDir); ok {
		if entry, ok := journal.Last(); ok {
			if line := agent.RenderMemoryLine(entry); line != "" {
				b.WriteString("\n\nWeave this into your opening naturally: ")
				b.WriteString(line)
			}
		}
	}
	return b.String()
}
