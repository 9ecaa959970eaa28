package dialogue

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the dialogue core. Callers match them with
// errors.Is; the tool layer converts every one of them into an advisory
// string the LLM can speak, never a raw fault.
var (
	ErrUnknownField   = errors.New("unknown field")
	ErrWrongFieldType = errors.New("wrong field type")
	ErrUnknownMode    = errors.New("unknown mode")
	ErrTopicNotFound  = errors.New("topic not found")
	ErrDurableWrite   = errors.New("durable write failed")
	ErrFinalized      = errors.New("record already finalized")
)

// IncompleteError reports a finalize attempt while required fields are
// still unset. Missing lists the unmet field names in schema declaration
// order so the caller can ask a targeted follow-up question.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("record incomplete: missing %s", strings.Join(e.Missing, ", "))
}
