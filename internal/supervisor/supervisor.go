// Package supervisor guarantees single-instance execution of a named
// long-running worker. EnsureRunning is idempotent: no matter how many times
// it is invoked, at most one live session exists per name.
package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spineslab/spinesq/internal/journal"
)

// SessionManager is the OS-level session facility the supervisor drives.
// Exists must be side-effect free; Create must detach the session from the
// caller's lifetime.
type SessionManager interface {
	Available() error
	Exists(name string) (bool, error)
	Create(name, dir string, argv []string, outputLog string) error
}

// Status is the outcome of one EnsureRunning call.
type Status string

const (
	StatusStarted        Status = "started"
	StatusAlreadyRunning Status = "already-running"
)

// Spec describes the worker to supervise. The command is a fully resolved
// argument list; environment activation and argument assembly are the
// caller's responsibility.
type Spec struct {
	// Name uniquely identifies the session per deployment.
	Name string
	// Command is the worker argv. Never joined into a shell string.
	Command []string
	// Dir is the working directory for the session.
	Dir string
	// OutputLog, when set, receives the worker's combined output.
	OutputLog string
}

// Result reports what one invocation did.
type Result struct {
	Status       Status
	InvocationID string
	Session      string
	// LogErr carries a non-fatal launch-journal failure, if any.
	LogErr error
}

// Config wires a Supervisor.
type Config struct {
	Sessions SessionManager
	Sink     journal.Sink
	// Store is the optional queryable journal; nil disables it.
	Store *journal.Store
	// LockPath is the exclusive lock file closing the check-then-act race.
	LockPath string
	Logger   zerolog.Logger
	// VerifyDelay is how long to wait before the post-launch liveness
	// re-check. Zero skips verification.
	VerifyDelay time.Duration
}

// Supervisor ensures at most one instance of the named worker is active.
type Supervisor struct {
	sessions    SessionManager
	sink        journal.Sink
	store       *journal.Store
	lockPath    string
	logger      zerolog.Logger
	verifyDelay time.Duration
}

// New creates a Supervisor.
func New(cfg Config) (*Supervisor, error) {
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("launch journal sink is required")
	}
	if cfg.LockPath == "" {
		return nil, fmt.Errorf("lock path is required")
	}
	return &Supervisor{
		sessions:    cfg.Sessions,
		sink:        cfg.Sink,
		store:       cfg.Store,
		lockPath:    cfg.LockPath,
		logger:      cfg.Logger,
		verifyDelay: cfg.VerifyDelay,
	}, nil
}

// EnsureRunning checks for a live session named spec.Name and creates one
// running spec.Command if absent. It never blocks on the worker and never
// creates a second instance. Concurrent calls serialize on the lock file, so
// each caller journals its own records and observes its own outcome: exactly
// one reports Started, the rest AlreadyRunning.
func (s *Supervisor) EnsureRunning(ctx context.Context, spec Spec) (Result, error) {
	if spec.Name == "" {
		return Result{}, fmt.Errorf("session name cannot be empty")
	}
	if len(spec.Command) == 0 {
		return Result{}, fmt.Errorf("start command cannot be empty")
	}

	return s.ensure(ctx, spec)
}

func (s *Supervisor) ensure(ctx context.Context, spec Spec) (Result, error) {
	res := Result{
		InvocationID: uuid.NewString(),
		Session:      spec.Name,
	}

	s.record(&res, journal.Record{
		InvocationID: res.InvocationID,
		Time:         time.Now(),
		Kind:         journal.KindInvoked,
		Session:      spec.Name,
		Command:      spec.Command,
	})

	if err := s.sessions.Available(); err != nil {
		return res, fmt.Errorf("%w: %v", ErrSessionManagerUnavailable, err)
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	// Existence check and create must be one atomic step: two invocations
	// both observing "absent" would each start a worker.
	lock, err := acquireLock(s.lockPath)
	if err != nil {
		return res, err
	}
	defer lock.release()

	exists, err := s.sessions.Exists(spec.Name)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrSessionManagerUnavailable, err)
	}

	if exists {
		res.Status = StatusAlreadyRunning
		s.record(&res, journal.Record{
			InvocationID: res.InvocationID,
			Time:         time.Now(),
			Kind:         journal.KindAlreadyRunning,
			Session:      spec.Name,
			Command:      spec.Command,
		})
		s.logger.Info().
			Str("session", spec.Name).
			Str("invocation", res.InvocationID).
			Msg("session already running")
		return res, nil
	}

	if err := s.sessions.Create(spec.Name, spec.Dir, spec.Command, spec.OutputLog); err != nil {
		return res, fmt.Errorf("%w: %v", ErrSessionManagerUnavailable, err)
	}

	s.verifyLaunch(spec.Name)

	res.Status = StatusStarted
	s.record(&res, journal.Record{
		InvocationID: res.InvocationID,
		Time:         time.Now(),
		Kind:         journal.KindStarted,
		Session:      spec.Name,
		Command:      spec.Command,
	})
	s.logger.Info().
		Str("session", spec.Name).
		Str("invocation", res.InvocationID).
		Strs("command", spec.Command).
		Msg("session started")
	return res, nil
}

// verifyLaunch re-checks existence once after a short delay. A worker that
// exits immediately is logged but does not change the Started outcome; the
// next invocation will observe the dead session and start a fresh one.
func (s *Supervisor) verifyLaunch(name string) {
	if s.verifyDelay <= 0 {
		return
	}
	time.Sleep(s.verifyDelay)
	alive, err := s.sessions.Exists(name)
	if err == nil && !alive {
		s.logger.Warn().
			Str("session", name).
			Msg("worker exited immediately after launch")
	}
}

// record appends to the text sink and, when configured, the journal store.
// Failures are collected on the Result as ErrLogSinkUnwritable and never
// abort the invocation.
func (s *Supervisor) record(res *Result, rec journal.Record) {
	if err := s.sink.Append(rec); err != nil && res.LogErr == nil {
		res.LogErr = fmt.Errorf("%w: %v", ErrLogSinkUnwritable, err)
	}
	if s.store != nil {
		if err := s.store.Append(rec); err != nil && res.LogErr == nil {
			res.LogErr = fmt.Errorf("%w: %v", ErrLogSinkUnwritable, err)
		}
	}
}
