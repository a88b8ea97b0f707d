package config

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/spineslab/spinesq/internal/tmux"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the whole config and returns the first problem found.
func (v *Validator) Validate(cfg *Config) error {
	if err := v.ValidateSessionName(cfg.Session.Name); err != nil {
		return err
	}
	if err := v.ValidateCommand(cfg.Session.Command); err != nil {
		return err
	}
	if err := v.ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if cfg.Watch.Schedule != "" {
		if err := v.ValidateSchedule(cfg.Watch.Schedule); err != nil {
			return err
		}
	}
	if cfg.LockFile == "" {
		return fmt.Errorf("lock_file cannot be empty")
	}
	if cfg.LaunchLog == "" {
		return fmt.Errorf("launch_log cannot be empty")
	}
	return nil
}

// ValidateSessionName validates the tmux session name
func (v *Validator) ValidateSessionName(name string) error {
	if name == "" {
		return fmt.Errorf("session name cannot be empty")
	}
	if !tmux.ValidName(name) {
		return fmt.Errorf("invalid session name: %s (letters, digits, _ and - only)", name)
	}
	return nil
}

// ValidateCommand validates the worker command argv
func (v *Validator) ValidateCommand(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("session command cannot be empty")
	}
	if argv[0] == "" {
		return fmt.Errorf("session command binary cannot be empty")
	}
	return nil
}

// ValidateLogLevel validates log level
func (v *Validator) ValidateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, valid := range validLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", level)
}

// ValidateSchedule validates a five-field cron expression
func (v *Validator) ValidateSchedule(expr string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", expr, err)
	}
	return nil
}
