package journal

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the outcome a launch record describes
type Kind string

const (
	KindInvoked        Kind = "invoked"
	KindAlreadyRunning Kind = "already-running"
	KindStarted        Kind = "started"
)

// Record is one append-only audit entry for a supervisor invocation.
// Records are never rewritten or deleted by the supervisor.
type Record struct {
	InvocationID string
	Time         time.Time
	Kind         Kind
	Session      string
	Command      []string
}

// Sink receives launch records. Implementations must be append-only.
type Sink interface {
	Append(rec Record) error
}

// Line renders the record in the on-disk log format: "[<timestamp>] <event text>"
func (r Record) Line() string {
	return fmt.Sprintf("[%s] %s session=%s cmd=%q invocation=%s",
		r.Time.Format(time.RFC3339), r.Kind, r.Session,
		strings.Join(r.Command, " "), r.InvocationID)
}
