// Package runtime supervises the external sqlmap process: it launches at
// most one scan at a time, relays its output line by line, and reports the
// terminal outcome.
package runtime

import (
	"time"

	"github.com/secmux/sqlmux/internal/model"
)

// EventType discriminates scan events.
type EventType int

const (
	// EventStarted is emitted once, after the process launched.
	EventStarted EventType = iota
	// EventLine carries one output line, in process output order.
	EventLine
	// EventFinished is emitted once, after the process exited; it is the
	// last event before the channel closes.
	EventFinished
)

// Event is one item of a session's ordered event stream.
type Event struct {
	Type EventType
	// Line is set for EventLine.
	Line string
	// Success, Message and Timestamp are set for EventFinished.
	Success   bool
	Message   string
	Timestamp time.Time
}

// Result is the recorded terminal state of a finished session.
type Result struct {
	Outcome model.Outcome
	Message string
	// Cancelled reports that the scan ended because Stop was requested,
	// as opposed to failing on its own.
	Cancelled  bool
	StartedAt  time.Time
	FinishedAt time.Time
}
