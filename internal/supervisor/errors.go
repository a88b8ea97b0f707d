package supervisor

import "errors"

var (
	// ErrSessionManagerUnavailable is returned when the underlying session
	// facility cannot be queried or invoked (e.g. the tmux binary is
	// missing). This is the only fatal error class.
	ErrSessionManagerUnavailable = errors.New("session manager unavailable")

	// ErrLogSinkUnwritable marks a launch journal failure. It is never
	// returned from EnsureRunning; it is carried on Result.LogErr so
	// callers can report the degradation without aborting the start.
	ErrLogSinkUnwritable = errors.New("log sink unwritable")
)
