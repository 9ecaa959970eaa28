// Package dialogue implements the slot-filling state machine and
// persona-mode controller shared by every Murf voice agent.
//
// The same pattern kept reappearing across the agents — a structured
// record filled in incrementally through tool calls, a completeness
// check, a one-time durable write, and a persona (instructions + voice
// + tool subset) swapped as the conversation changes mode. This package
// owns that pattern once:
// - schema + record: declared fields, set/append/clear, completeness
// - finalize + store: validation, identifier derivation, atomic write
// - persona + registry: mode state machine with topic context
// - session: one value owning all of the above per conversation
package dialogue

import (
	"fmt"
	"strings"
)

// --- Field kind enum ---

// FieldKind distinguishes scalar fields from append-only list fields.
type FieldKind string

const (
	KindScalar FieldKind = "scalar"
	KindList   FieldKind = "list"
)

// validKinds is the set of allowed field kinds.
var validKinds = map[FieldKind]bool{
	KindScalar: true,
	KindList:   true,
}

// ValidateKind returns an error if the kind is not recognized.
func ValidateKind(k FieldKind) error {
	if !validKinds[k] {
		return fmt.Errorf("invalid field kind %q: must be one of: scalar, list", k)
	}
	return nil
}

// --- Field schema ---

// FieldSpec declares one slot of a task record.
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required" yaml:"required"`
	Primary     bool      `json:"primary,omitempty" yaml:"primary,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// Schema is an ordered list of field declarations. Order is meaningful:
// missing-field lists and record summaries report in declared order.
type Schema []FieldSpec

// Field returns the declaration for the named field.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Primary returns the field whose value seeds the record identifier,
// if the schema declares one.
func (s Schema) Primary() (FieldSpec, bool) {
	for _, f := range s {
		if f.Primary {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Names returns all field names in declared order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// ListNames returns the names of list-typed fields in declared order.
func (s Schema) ListNames() []string {
	var names []string
	for _, f := range s {
		if f.Kind == KindList {
			names = append(names, f.Name)
		}
	}
	return names
}

// Validate checks the schema is well formed: unique names, known kinds,
// and at most one primary field (which must be a scalar). An empty
// schema is valid — agents that track no task fields declare none.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s))
	primaries := 0
	for _, f := range s {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("field name must not be empty")
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		if err := ValidateKind(f.Kind); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		if f.Primary {
			primaries++
			if f.Kind != KindScalar {
				return fmt.Errorf("primary field %q must be a scalar", f.Name)
			}
		}
	}
	if primaries > 1 {
		return fmt.Errorf("at most one primary field allowed, got %d", primaries)
	}
	return nil
}
