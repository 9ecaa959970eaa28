package dialogue

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Record is the mutable in-progress task for one session: scalar and
// list values accumulated across turns, plus the finalize state.
// Mutation goes through Set/Append/Clear only; after a successful
// finalize the record is immutable.
type Record struct {
	schema    Schema
	scalars   map[string]string
	lists     map[string][]string
	finalized bool
	result    *FinalizeResult
}

// NewRecord creates an empty record for the given schema.
// One record per conversation; sessions never share one.
func NewRecord(schema Schema) *Record {
	return &Record{
		schema:  schema,
		scalars: make(map[string]string),
		lists:   make(map[string][]string),
	}
}

// Schema returns the record's field declarations.
func (r *Record) Schema() Schema {
	return r.schema
}

// Finalized reports whether the record has been durably written.
func (r *Record) Finalized() bool {
	return r.finalized
}

// Set assigns a field value: scalars are overwritten, list fields are
// replaced wholesale. An absent or empty value is a no-op — callers
// pass optional arguments freely, and an omitted argument must never
// clear a previously set field. Only Clear resets a field.
func (r *Record) Set(field string, value any) error {
	spec, err := r.mutable(field)
	if err != nil {
		return err
	}

	if value == nil {
		return nil
	}

	if spec.Kind == KindList {
		vals, err := toStringList(value)
		if err != nil {
			return fmt.Errorf("%w: field %q wants a list of strings", ErrWrongFieldType, field)
		}
		vals = trimEmpty(vals)
		if len(vals) == 0 {
			return nil
		}
		r.lists[field] = vals
		return nil
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Errorf("%w: field %q wants a string", ErrWrongFieldType, field)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	r.scalars[field] = s
	return nil
}

// Append adds one value to a list field, preserving insertion order
// without deduplication. Scalar fields reject append.
// An absent or empty value is a no-op.
func (r *Record) Append(field string, value any) error {
	spec, err := r.mutable(field)
	if err != nil {
		return err
	}
	if spec.Kind != KindList {
		return fmt.Errorf("%w: %q is a scalar field, set it instead", ErrWrongFieldType, field)
	}

	if value == nil {
		return nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Errorf("%w: field %q wants a string value", ErrWrongFieldType, field)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	r.lists[field] = append(r.lists[field], s)
	return nil
}

// Clear explicitly resets a field to unset. This is the only operation
// that removes a previously set value.
func (r *Record) Clear(field string) error {
	spec, err := r.mutable(field)
	if err != nil {
		return err
	}
	if spec.Kind == KindList {
		delete(r.lists, field)
		return nil
	}
	delete(r.scalars, field)
	return nil
}

// Scalar returns a scalar field's value and whether it is set.
func (r *Record) Scalar(field string) (string, bool) {
	v, ok := r.scalars[field]
	return v, ok
}

// List returns a copy of a list field's values, nil when unset.
// Callers cannot reach the record's own slice.
func (r *Record) List(field string) []string {
	vals, ok := r.lists[field]
	if !ok {
		return nil
	}
	return append([]string(nil), vals...)
}

// IsComplete reports whether every required field is satisfied:
// scalars set, lists non-empty. Optional fields never affect the
// result. Pure — no I/O, no mutation.
func (r *Record) IsComplete() bool {
	return len(r.MissingFields()) == 0
}

// MissingFields returns the required fields still unset, in schema
// declaration order.
func (r *Record) MissingFields() []string {
	var missing []string
	for _, f := range r.schema {
		if !f.Required {
			continue
		}
		if f.Kind == KindList {
			if len(r.lists[f.Name]) == 0 {
				missing = append(missing, f.Name)
			}
			continue
		}
		if _, ok := r.scalars[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// Progress returns how many required fields are filled out of the
// total required.
func (r *Record) Progress() (filled, total int) {
	for _, f := range r.schema {
		if f.Required {
			total++
		}
	}
	return total - len(r.MissingFields()), total
}

// Summary renders a field-by-field view of the record in declared
// order, the text an agent reads back when confirming the task.
func (r *Record) Summary() string {
	var b strings.Builder
	for i, f := range r.schema {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(f.Name)
		b.WriteString(": ")
		if f.Kind == KindList {
			if vals := r.lists[f.Name]; len(vals) > 0 {
				b.WriteString(strings.Join(vals, ", "))
			} else {
				b.WriteString("(none)")
			}
			continue
		}
		if v, ok := r.scalars[f.Name]; ok {
			b.WriteString(v)
		} else {
			b.WriteString("(not set)")
		}
	}
	return b.String()
}

// mutable resolves a field for mutation, rejecting unknown fields and
// any mutation of a finalized record.
func (r *Record) mutable(field string) (FieldSpec, error) {
	if r.finalized {
		return FieldSpec{}, fmt.Errorf("%w: cannot change %q", ErrFinalized, field)
	}
	spec, ok := r.schema.Field(field)
	if !ok {
		return FieldSpec{}, fmt.Errorf("%w: %q is not in the schema (fields: %s)", ErrUnknownField, field, strings.Join(r.schema.Names(), ", "))
	}
	return spec, nil
}

// toStringList coerces a list-field value. A bare string becomes a
// single entry, never split on whitespace; slice-shaped values go
// through cast.
func toStringList(value any) ([]string, error) {
	if s, ok := value.(string); ok {
		return []string{s}, nil
	}
	return cast.ToStringSliceE(value)
}

// trimEmpty copies the non-empty entries of a value list into a fresh
// slice. The record must never share a backing array with the caller.
func trimEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
