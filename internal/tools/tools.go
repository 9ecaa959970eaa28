// Package tools implements the MCP tool handlers for the dialogue core.
//
// Each tool is the single mutation entry point for one session
// operation: record updates, finalize, persona switches. Handlers never
// return a Go error for a domain failure — every error from the
// dialogue package is converted into an advisory sentence the LLM can
// speak or reason over, so a bad tool call can never crash the
// conversation.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on the session value and the PipelineBridge
//   interface, not on any concrete speech runtime
package tools

import (
	"errors"
	"strings"

	"github.com/Xzone2486/Murf/internal/dialogue"
)

// PipelineBridge receives the new persona descriptor after every
// successful switch, so the enclosing speech runtime can swap
// instructions and voice together. Implementations must treat the
// descriptor as immutable.
type PipelineBridge interface {
	PersonaChanged(d dialogue.Descriptor)
}

// notify pushes a persona change to the bridge. Nil-safe: tools work
// without a bridge installed.
func notify(b PipelineBridge, d dialogue.Descriptor) {
	if b != nil {
		b.PersonaChanged(d)
	}
}

// advisory converts a dialogue error into the sentence the agent
// relays to the caller. Raw internal faults never cross the tool
// boundary.
func advisory(err error) string {
	var incomplete *dialogue.IncompleteError
	switch {
	case errors.As(err, &incomplete):
		return "Not everything is filled in yet. Still missing: " +
			strings.Join(incomplete.Missing, ", ") + ". Ask for those details first."
	case errors.Is(err, dialogue.ErrFinalized):
		return "This task is already finalized and can no longer be changed."
	case errors.Is(err, dialogue.ErrDurableWrite):
		return "Saving the record failed and nothing was written. " +
			"It is safe to try finalizing again in a moment. (" + err.Error() + ")"
	case errors.Is(err, dialogue.ErrUnknownField),
		errors.Is(err, dialogue.ErrWrongFieldType),
		errors.Is(err, dialogue.ErrUnknownMode),
		errors.Is(err, dialogue.ErrTopicNotFound):
		return err.Error()
	default:
		return err.Error()
	}
}

// progressLine summarizes where the record stands, the follow-up cue
// appended to most acknowledgments.
func progressLine(rec *dialogue.Record) string {
	if missing := rec.MissingFields(); len(missing) > 0 {
		return "Still missing: " + strings.Join(missing, ", ") + "."
	}
	return "All required details are in — confirm with the user, then finalize."
}

// personaLine describes the freshly activated persona for the tool
// result text.
func personaLine(d dialogue.Descriptor, topic dialogue.Topic, hasTopic bool) string {
	var b strings.Builder
	b.WriteString("Now in ")
	b.WriteString(d.Mode)
	b.WriteString(" mode (voice ")
	b.WriteString(d.Voice)
	b.WriteString(")")
	if hasTopic {
		b.WriteString(", topic: ")
		b.WriteString(topic.Title)
	}
	b.WriteString(". Continue the conversation under the new instructions.")
	return b.String()
}
