// Package agents declares the built-in Murf voice agents and loads
// user-defined ones from YAML files.
//
// An Agent is pure configuration: the field schema, the persona specs,
// the topics, and where finalized records go. The dialogue package
// does the work; an agent only tells it what shape to take.
package agents

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Xzone2486/Murf/internal/dialogue"
)

// Agent is one voice agent configuration.
type Agent struct {
	Name     string                 `yaml:"name"`
	Label    string                 `yaml:"label"`
	Greeting string                 `yaml:"greeting"`
	Schema   dialogue.Schema        `yaml:"schema,omitempty"`
	Personas []dialogue.PersonaSpec `yaml:"personas"`
	Topics   []dialogue.Topic       `yaml:"topics,omitempty"`
	Storage  StorageSpec            `yaml:"storage,omitempty"`

	// MemoryLine, when set, is woven into the opening instructions
	// from the previous journal entry ({{weekday}} plus any entry
	// field placeholders).
	MemoryLine string `yaml:"memory_line,omitempty"`

	// CaseTools exposes the fraud-case lookup/update tools.
	CaseTools bool `yaml:"case_tools,omitempty"`

	// RestartTool exposes the restart tool that discards the record.
	RestartTool bool `yaml:"restart_tool,omitempty"`
}

// StorageSpec selects the durable layout for finalized records.
type StorageSpec struct {
	// Layout is "file" (one <prefix>_<id>.json per record), "journal"
	// (one growing JSON array), or empty for agents that never
	// finalize.
	Layout  string `yaml:"layout,omitempty"`
	Prefix  string `yaml:"prefix,omitempty"`
	Path    string `yaml:"path,omitempty"`
	Summary string `yaml:"summary,omitempty"`
}

// Validate checks the agent configuration is usable.
func (a Agent) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("agent name must not be empty")
	}
	if err := a.Schema.Validate(); err != nil {
		return fmt.Errorf("agent %q: %w", a.Name, err)
	}
	if len(a.Personas) == 0 {
		return fmt.Errorf("agent %q: at least one persona is required", a.Name)
	}

	switch a.Storage.Layout {
	case "":
	case "file":
		if a.Storage.Prefix == "" {
			return fmt.Errorf("agent %q: file storage needs a prefix", a.Name)
		}
	case "journal":
		if a.Storage.Path == "" {
			return fmt.Errorf("agent %q: journal storage needs a path", a.Name)
		}
	default:
		return fmt.Errorf("agent %q: invalid storage layout %q: must be one of: file, journal", a.Name, a.Storage.Layout)
	}
	return nil
}

// Store builds the record store for this agent under dataDir, or nil
// when the agent never finalizes a record.
func (a Agent) Store(dataDir string) dialogue.Store {
	dir := filepath.Join(dataDir, "records", a.Name)
	switch a.Storage.Layout {
	case "file":
		return dialogue.NewFileStore(dir, a.Storage.Prefix)
	case "journal":
		js := dialogue.NewJournalStore(filepath.Join(dir, a.Storage.Path))
		js.Summary = a.Storage.Summary
		return js
	}
	return nil
}

// Journal returns the agent's journal store when it uses one, for
// reading the previous entry back at session start.
func (a Agent) Journal(dataDir string) (*dialogue.JournalStore, bool) {
	if a.Storage.Layout != "journal" {
		return nil, false
	}
	js, _ := a.Store(dataDir).(*dialogue.JournalStore)
	return js, js != nil
}

// RenderGreeting fills the {{topic_list}} placeholder in the greeting.
func (a Agent) RenderGreeting() string {
	titles := make([]string, len(a.Topics))
	for i, t := range a.Topics {
		titles[i] = t.Title
	}
	return strings.ReplaceAll(a.Greeting, "{{topic_list}}", strings.Join(titles, ", "))
}

// RenderMemoryLine fills the agent's memory line from the previous
// journal entry: {{weekday}} from the entry timestamp, plus one
// placeholder per entry field. Returns "" when the agent has no
// memory line.
func (a Agent) RenderMemoryLine(entry map[string]any) string {
	if a.MemoryLine == "" || entry == nil {
		return ""
	}

	pairs := []string{"{{weekday}}", entryWeekday(entry)}
	for k, v := range entry {
		var s string
		switch vv := v.(type) {
		case string:
			s = vv
		case []any:
			parts := make([]string, 0, len(vv))
			for _, p := range vv {
				parts = append(parts, fmt.Sprint(p))
			}
			s = strings.Join(parts, ", ")
		default:
			s = fmt.Sprint(vv)
		}
		pairs = append(pairs, "{{"+k+"}}", s)
	}
	return strings.NewReplacer(pairs...).Replace(a.MemoryLine)
}

// entryWeekday derives the weekday name from an entry's timestamp or
// date field.
func entryWeekday(entry map[string]any) string {
	if ts, ok := entry["timestamp"].(string); ok {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return t.Weekday().String()
		}
	}
	if d, ok := entry["date"].(string); ok {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			return t.Weekday().String()
		}
	}
	return "your last visit"
}

// --- User-defined agents ---

// LoadFile reads one agent definition from a YAML file.
func LoadFile(path string) (Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Agent{}, fmt.Errorf("reading agent file: %w", err)
	}

	var a Agent
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Agent{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if err := a.Validate(); err != nil {
		return Agent{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return a, nil
}

// LoadDir reads every *.yaml/*.yml agent definition in dir. A missing
// directory is an empty result, not an error.
func LoadDir(dir string) ([]Agent, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading agents directory: %w", err)
	}

	var agents []Agent
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		a, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// All returns the built-in agents plus any user-defined ones from dir.
// A user agent with a built-in's name replaces it.
func All(dir string) ([]Agent, error) {
	agents := Builtin()

	users, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		replaced := false
		for i, b := range agents {
			if b.Name == u.Name {
				agents[i] = u
				replaced = true
				break
			}
		}
		if !replaced {
			agents = append(agents, u)
		}
	}
	return agents, nil
}

// Find returns the named agent from the list.
func Find(agents []Agent, name string) (Agent, bool) {
	for _, a := range agents {
		if a.Name == name {
			return a, true
		}
	}
	return Agent{}, false
}
