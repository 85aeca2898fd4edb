package models

import "time"

// EventKind says what happened to a watched rule.
type EventKind string

const (
	// EventFound means the rule started matching a window.
	EventFound EventKind = "found"
	// EventLost means the rule stopped matching.
	EventLost EventKind = "lost"
)

// RuleEvent records one transition of a watched rule, together with the
// window that triggered it (empty for lost transitions).
type RuleEvent struct {
	Timestamp time.Time
	Rule      string
	Kind      EventKind
	Title     string
	Class     string
	PID       int
}
