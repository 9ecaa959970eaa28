package dialogue

import (
	"fmt"
	"strings"
)

// timestampKeyFormat is the identifier fallback when a schema has no
// usable primary field.
const timestampKeyFormat = "20060102150405"

// FinalizeResult is the cached outcome of a successful finalize.
type FinalizeResult struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// Finalize validates completeness and performs the one-time durable
// write of the record through store.
//
// Idempotent: a finalized record returns the prior result unchanged,
// guarding against duplicate tool invocations in the same turn. An
// incomplete record fails with IncompleteError carrying the missing
// field names. A failed write wraps ErrDurableWrite and leaves the
// record unfinalized, so a retry is safe — no partial state survives.
func Finalize(rec *Record, store Store) (*FinalizeResult, error) {
	if rec.finalized {
		return rec.result, nil
	}

	if missing := rec.MissingFields(); len(missing) > 0 {
		return nil, &IncompleteError{Missing: missing}
	}

	id := deriveID(rec)
	location, err := store.Write(id, rec.document(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDurableWrite, err)
	}

	rec.finalized = true
	rec.result = &FinalizeResult{
		ID:       id,
		Location: location,
		Summary:  rec.Summary(),
	}
	return rec.result, nil
}

// deriveID computes the external identifier for a record: the sanitized
// primary field value, or a UTC timestamp key when the schema declares
// no primary field or its value sanitizes to nothing.
func deriveID(rec *Record) string {
	if p, ok := rec.schema.Primary(); ok {
		if v, set := rec.Scalar(p.Name); set {
			if s := sanitizeID(v); s != "" {
				return s
			}
		}
	}
	return timeNow().UTC().Format(timestampKeyFormat)
}

// sanitizeID strips every character that is not a letter or digit, so a
// spoken field value is safe as part of a file or row key.
func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// document assembles the durable artifact: every declared field plus
// the identifier and a server-assigned timestamp. Unset lists surface
// as empty arrays, never null.
func (r *Record) document(id string) map[string]any {
	doc := make(map[string]any, len(r.schema)+2)
	for _, f := range r.schema {
		if f.Kind == KindList {
			vals := r.lists[f.Name]
			if vals == nil {
				vals = []string{}
			}
			doc[f.Name] = vals
			continue
		}
		doc[f.Name] = r.scalars[f.Name]
	}
	doc["id"] = id
	doc["timestamp"] = timeNow().UTC().Format("2006-01-02T15:04:05Z07:00")
	return doc
}
