// Package tmux drives the tmux session manager that hosts the worker.
// Sessions are created detached so they outlive the supervisor process.
package tmux

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Manager wraps the tmux binary. The zero value is not usable; use NewManager.
type Manager struct {
	bin string
}

// NewManager returns a Manager using the given tmux binary, or "tmux" from
// PATH when empty.
func NewManager(bin string) *Manager {
	if bin == "" {
		bin = "tmux"
	}
	return &Manager{bin: bin}
}

// Available checks that the tmux binary runs. A non-nil error means the session
// manager cannot be queried or invoked at all.
func (m *Manager) Available() error {
	cmd := exec.Command(m.bin, "-V")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("tmux not found or not working: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Exists reports whether a session with the exact name is live.
// The check has no side effects.
func (m *Manager) Exists(name string) (bool, error) {
	// "=" prefix forces exact-match, not prefix-match
	cmd := exec.Command(m.bin, "has-session", "-t", "="+name)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return true, nil
	}
	// has-session exits 1 both for "no such session" and "no server running";
	// either way the named session is not live.
	if _, ok := err.(*exec.ExitError); ok {
		return false, nil
	}
	return false, fmt.Errorf("failed to query session %s: %w (output: %s)", name, err, strings.TrimSpace(string(output)))
}

// Create starts a new detached session running argv in dir. The command is
// passed as a structured argument list, never assembled into a shell string.
// When workerLog is non-empty, pane output is piped to it append-only.
func (m *Manager) Create(name, dir string, argv []string, workerLog string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command for session %s", name)
	}

	args := createArgs(name, dir, argv)
	cmd := exec.Command(m.bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to create tmux session: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}

	if workerLog != "" {
		if err := m.pipeOutput(name, workerLog); err != nil {
			// Session is up; losing worker output capture is not fatal
			return nil
		}
	}
	return nil
}

// createArgs builds the new-session argument list. Split out for tests.
func createArgs(name, dir string, argv []string) []string {
	args := []string{"new-session", "-d", "-s", name}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	// With multiple trailing arguments tmux execs the command directly
	// instead of handing a string to the shell.
	args = append(args, "--")
	args = append(args, argv...)
	return args
}

// pipeOutput attaches pipe-pane so worker output is appended to path.
// pipe-pane takes a shell command on the tmux side, so the path is the one
// place quoting still applies; quoteShell closes that hole.
func (m *Manager) pipeOutput(name, path string) error {
	pipeCmd := "cat >> " + quoteShell(path)
	cmd := exec.Command(m.bin, "pipe-pane", "-t", "="+name, "-o", pipeCmd)
	return cmd.Run()
}

// Kill terminates the named session. Used by operator teardown only; the
// supervisor itself never kills what it launched.
func (m *Manager) Kill(name string) error {
	cmd := exec.Command(m.bin, "kill-session", "-t", "="+name)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to kill session %s: %w (output: %s)", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

var sessionNameRe = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_.-]*$`)

// ValidName reports whether name is safe to use as a tmux session name.
// tmux itself rejects "." and ":" in names; the leading "=" exact-match
// syntax also requires the name not start with punctuation.
func ValidName(name string) bool {
	return sessionNameRe.MatchString(name) && !strings.ContainsAny(name, ".:")
}

// quoteShell single-quotes s for the tmux-side shell.
func quoteShell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
