package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Xzone2486/Murf/internal/agents"
	"github.com/Xzone2486/Murf/internal/dialogue"
)

func TestNewWithConfig_UnknownAgent(t *testing.T) {
	_, cleanup, err := NewWithConfig("psychic", Config{DataDir: t.TempDir()})
	defer cleanup()

	if err == nil {
		t.Fatal("expected an error for an unknown agent")
	}
	if !strings.Contains(err.Error(), "barista") {
		t.Errorf("error should list the available agents, got: %v", err)
	}
}

func TestNewWithConfig_BuildsEveryBuiltin(t *testing.T) {
	for _, name := range []string{"barista", "wellness", "tutor", "fraud", "grocery", "storyteller", "sdr"} {
		t.Run(name, func(t *testing.T) {
			s, cleanup, err := NewWithConfig(name, Config{DataDir: t.TempDir()})
			defer cleanup()

			if err != nil {
				t.Fatalf("NewWithConfig(%q) failed: %v", name, err)
			}
			if s == nil {
				t.Fatal("server is nil")
			}
		})
	}
}

func TestNewWithConfig_UserAgentOverride(t *testing.T) {
	dataDir := t.TempDir()
	agentsDir := filepath.Join(dataDir, "agents")
	if err := os.MkdirAll(agentsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	yaml := `name: barista
label: Corner Espresso
greeting: "Hey, what'll it be?"
schema:
  - name: drink
    kind: scalar
    required: true
personas:
  - mode: barista
    voice: en-US-ken
    instructions: "Take the order."
storage:
  layout: file
  prefix: order
`
	if err := os.WriteFile(filepath.Join(agentsDir, "barista.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write agent file: %v", err)
	}

	s, cleanup, err := NewWithConfig("barista", Config{DataDir: dataDir})
	defer cleanup()

	if err != nil {
		t.Fatalf("NewWithConfig failed: %v", err)
	}
	if s == nil {
		t.Fatal("server is nil")
	}
}

func TestServerInstructions_GreetingAndMemoryLine(t *testing.T) {
	dataDir := t.TempDir()

	agent := agents.Agent{
		Name:     "checkin",
		Label:    "Check-in",
		Greeting: "How are you today?",
		Schema: dialogue.Schema{
			{Name: "mood", Kind: dialogue.KindScalar, Required: true},
		},
		Personas: []dialogue.PersonaSpec{
			{Mode: "companion", Voice: "en-US-matthew", Instructions: "Be kind."},
		},
		Storage:    agents.StorageSpec{Layout: "journal", Path: "log.json"},
		MemoryLine: "Last time you were feeling {{mood}}.",
	}

	// Seed a previous journal entry so the memory line has something
	// to recall.
	journal, ok := agent.Journal(dataDir)
	if !ok {
		t.Fatal("journal store not available")
	}
	if _, err := journal.Write("1", map[string]any{"mood": "calm"}); err != nil {
		t.Fatalf("seeding journal: %v", err)
	}

	session, err := dialogue.NewSession(agent.Schema, agent.Personas, nil, agent.Store(dataDir))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	got := serverInstructions(agent, session, dataDir)
	if !strings.Contains(got, "Be kind.") {
		t.Errorf("instructions should carry the persona text, got: %s", got)
	}
	if !strings.Contains(got, "How are you today?") {
		t.Errorf("instructions should carry the greeting, got: %s", got)
	}
	if !strings.Contains(got, "feeling calm") {
		t.Errorf("instructions should recall the previous entry, got: %s", got)
	}
}
