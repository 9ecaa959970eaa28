package dialogue

import (
	"fmt"

	"github.com/google/uuid"
)

// Session owns all mutable conversation state: one slot record and one
// persona registry, created together at session start and discarded
// together when the conversation ends. Sessions are independent by
// construction — nothing here is shared or package-level — so
// cross-session isolation needs no locking.
type Session struct {
	ID       string
	Record   *Record
	Personas *Registry

	store Store
}

// NewSession creates a session for an agent's declared schema,
// personas and topics. The store may be nil for agents that never
// finalize a record.
func NewSession(schema Schema, personas []PersonaSpec, topics []Topic, store Store) (*Session, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	registry, err := NewRegistry(personas, topics)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:       uuid.NewString(),
		Record:   NewRecord(schema),
		Personas: registry,
		store:    store,
	}, nil
}

// HasStore reports whether the session can finalize records.
func (s *Session) HasStore() bool {
	return s.store != nil
}

// Finalize validates the session's record and durably writes it
// through the session store. Idempotent; see Finalize.
func (s *Session) Finalize() (*FinalizeResult, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no record store configured for this session")
	}
	return Finalize(s.Record, s.store)
}

// Restart discards the current record and starts an empty one, keeping
// the persona state. Used by narrative agents when the story begins
// anew.
func (s *Session) Restart() {
	s.Record = NewRecord(s.Record.schema)
}
