// Package events decodes JSONL test lifecycle logs and replays them
// against a collector, standing in for a live test engine.
package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Action is the lifecycle step an event describes.
type Action string

const (
	// ActionStart opens a test.
	ActionStart Action = "start"
	// ActionPass reports a successful outcome.
	ActionPass Action = "pass"
	// ActionFail reports an assertion failure.
	ActionFail Action = "fail"
	// ActionError reports an unexpected error.
	ActionError Action = "error"
	// ActionSkip reports a skipped test.
	ActionSkip Action = "skip"
	// ActionStop closes a test after its outcome.
	ActionStop Action = "stop"
	// ActionOutput carries text written to a standard stream.
	ActionOutput Action = "output"
)

// Valid reports whether a names a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionStart, ActionPass, ActionFail, ActionError, ActionSkip, ActionStop, ActionOutput:
		return true
	default:
		return false
	}
}

// Terminal reports whether a is an outcome action.
func (a Action) Terminal() bool {
	switch a {
	case ActionPass, ActionFail, ActionError, ActionSkip:
		return true
	default:
		return false
	}
}

// Event is one line of a lifecycle log.
type Event struct {
	Action      Action `json:"action"`
	Test        string `json:"test,omitempty"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Message     string `json:"message,omitempty"`
	Trace       string `json:"trace,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Stream      string `json:"stream,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Validate checks the action and its required fields.
func (e Event) Validate() error {
	if !e.Action.Valid() {
		return fmt.Errorf("unknown action %q", e.Action)
	}

	switch e.Action {
	case ActionStart, ActionStop, ActionPass, ActionFail, ActionError, ActionSkip:
		if e.Test == "" {
			return fmt.Errorf("action %q requires a test id", e.Action)
		}
	case ActionOutput:
		if e.Stream != "stdout" && e.Stream != "stderr" {
			return fmt.Errorf("output stream must be stdout or stderr, got %q", e.Stream)
		}
	}

	return nil
}

// Decode reads a JSONL event log. Blank lines are ignored; a malformed
// or invalid line fails the whole decode with its line number.
func Decode(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		events []Event
		line   int
	)

	for scanner.Scan() {
		line++

		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(raw), &ev); err != nil {
			return nil, fmt.Errorf("failed to decode event at line %d: %w", line, err)
		}

		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("invalid event at line %d: %w", line, err)
		}

		events = append(events, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event log: %w", err)
	}

	return events, nil
}
