package dialogue

import (
	"fmt"
	"strings"
)

// --- Persona specs, descriptors, topics ---

// PersonaSpec declares one conversational role: a mode name, the voice
// the speech layer should use, an instruction template, and the tool
// subset active while the persona holds. Instruction templates may
// carry {{topic_title}}, {{topic_summary}}, {{probe_question}} and
// {{topic_list}} placeholders, filled from the topic context at switch
// time.
type PersonaSpec struct {
	Mode         string   `json:"mode" yaml:"mode"`
	Voice        string   `json:"voice" yaml:"voice"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	Tools        []string `json:"tools,omitempty" yaml:"tools,omitempty"`
}

// Descriptor is the rendered, immutable form of the active persona.
// It is swapped as a whole on every successful switch, so voice and
// instructions can never be observed mismatched.
type Descriptor struct {
	Mode         string   `json:"mode"`
	Voice        string   `json:"voice"`
	Instructions string   `json:"instructions"`
	Tools        []string `json:"tools,omitempty"`
}

// Topic is one teachable unit for multi-topic agents.
type Topic struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Summary  string `json:"summary" yaml:"summary"`
	Question string `json:"question" yaml:"question"`
}

// --- Registry: the persona state machine ---

// Registry owns the persona state for one session: the declared specs,
// the topic context, and the currently active descriptor. The machine
// has no terminal state; any mode may be revisited for the life of the
// session. All failure paths leave the active descriptor untouched.
type Registry struct {
	specs  []PersonaSpec
	topics []Topic
	mode   int // index into specs
	topic  int // index into topics
	active Descriptor
}

// NewRegistry builds a registry from declared personas. The first
// declared mode is the initial active persona.
func NewRegistry(specs []PersonaSpec, topics []Topic) (*Registry, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one persona is required")
	}
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if strings.TrimSpace(s.Mode) == "" {
			return nil, fmt.Errorf("persona mode must not be empty")
		}
		if seen[s.Mode] {
			return nil, fmt.Errorf("duplicate persona mode %q", s.Mode)
		}
		seen[s.Mode] = true
	}

	r := &Registry{specs: specs, topics: topics}
	r.active = r.render(0)
	return r, nil
}

// Active returns the currently active descriptor.
func (r *Registry) Active() Descriptor {
	return r.active
}

// Modes returns the declared mode names in order.
func (r *Registry) Modes() []string {
	modes := make([]string, len(r.specs))
	for i, s := range r.specs {
		modes[i] = s.Mode
	}
	return modes
}

// HasTopics reports whether the registry carries a topic context.
func (r *Registry) HasTopics() bool {
	return len(r.topics) > 0
}

// CurrentTopic returns the topic the context points at.
func (r *Registry) CurrentTopic() (Topic, bool) {
	if len(r.topics) == 0 {
		return Topic{}, false
	}
	return r.topics[r.topic], true
}

// Switch activates the named mode and re-renders its instructions from
// the current topic context. Unknown modes fail with ErrUnknownMode and
// leave the active persona unchanged.
func (r *Registry) Switch(mode string) (Descriptor, error) {
	idx := r.modeIndex(mode)
	if idx < 0 {
		return Descriptor{}, fmt.Errorf("%w: %q: must be one of: %s", ErrUnknownMode, mode, strings.Join(r.Modes(), ", "))
	}
	r.mode = idx
	r.active = r.render(idx)
	return r.active, nil
}

// SelectTopic resolves a free-text request against declared topic
// titles and makes the match current. While the initial persona (the
// selection mode) is active, selecting a topic also advances into the
// next declared mode — the default teaching persona; otherwise the
// current mode is kept and re-rendered for the new topic. No match
// fails with ErrTopicNotFound: active persona and index stay put.
func (r *Registry) SelectTopic(request string) (Descriptor, error) {
	idx, ok := r.resolveTopic(request)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: nothing matches %q (topics: %s)", ErrTopicNotFound, request, r.topicList())
	}

	r.topic = idx
	if r.mode == 0 && len(r.specs) > 1 {
		r.mode = 1
	}
	r.active = r.render(r.mode)
	return r.active, nil
}

// NextTopic advances to the following topic, wrapping past the end,
// and re-renders the active persona for it. Fails only when no topics
// are declared.
func (r *Registry) NextTopic() (Descriptor, error) {
	if len(r.topics) == 0 {
		return Descriptor{}, fmt.Errorf("%w: no topics declared", ErrTopicNotFound)
	}
	r.topic = (r.topic + 1) % len(r.topics)
	r.active = r.render(r.mode)
	return r.active, nil
}

// resolveTopic matches a request against declared titles using
// case-insensitive substring containment in either direction, so
// "loop" finds "Loops" and a spoken phrase containing a title still
// resolves. First declared match wins — deterministic, not a best
// match.
func (r *Registry) resolveTopic(request string) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(request))
	if q == "" {
		return 0, false
	}
	for i, t := range r.topics {
		title := strings.ToLower(t.Title)
		if strings.Contains(title, q) || strings.Contains(q, title) {
			return i, true
		}
	}
	return 0, false
}

// modeIndex resolves a mode name, case-insensitively, to its spec
// index, or -1.
func (r *Registry) modeIndex(mode string) int {
	mode = strings.ToLower(strings.TrimSpace(mode))
	for i, s := range r.specs {
		if strings.ToLower(s.Mode) == mode {
			return i
		}
	}
	return -1
}

// render produces a fresh immutable descriptor for the spec at idx
// against the current topic context.
func (r *Registry) render(idx int) Descriptor {
	spec := r.specs[idx]

	var t Topic
	if len(r.topics) > 0 {
		t = r.topics[r.topic]
	}
	instructions := strings.NewReplacer(
		"{{topic_title}}", t.Title,
		"{{topic_summary}}", t.Summary,
		"{{probe_question}}", t.Question,
		"{{topic_list}}", r.topicList(),
	).Replace(spec.Instructions)

	return Descriptor{
		Mode:         spec.Mode,
		Voice:        spec.Voice,
		Instructions: instructions,
		Tools:        append([]string(nil), spec.Tools...),
	}
}

// topicList renders the declared titles as a spoken-friendly list.
func (r *Registry) topicList() string {
	titles := make([]string, len(r.topics))
	for i, t := range r.topics {
		titles[i] = t.Title
	}
	return strings.Join(titles, ", ")
}
