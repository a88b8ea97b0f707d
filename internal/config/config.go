package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the main spinesq configuration
type Config struct {
	// Session describes the supervised worker session
	Session SessionConfig `json:"session" mapstructure:"session"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Watch configures scheduled re-invocation
	Watch WatchConfig `json:"watch" mapstructure:"watch"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// LaunchLog is the append-only text journal of supervisor invocations
	LaunchLog string `json:"launch_log" mapstructure:"launch_log"`

	// JournalDB is the SQLite journal backing `spinesq history`
	JournalDB string `json:"journal_db" mapstructure:"journal_db"`

	// LockFile scopes the exclusive check-and-create lock
	LockFile string `json:"lock_file" mapstructure:"lock_file"`
}

// SessionConfig holds the worker session settings
type SessionConfig struct {
	// Name is the tmux session name, unique per deployment
	Name string `json:"name" mapstructure:"name"`
	// Command is the worker argv, fully resolved by the operator
	Command []string `json:"command" mapstructure:"command"`
	// Dir is the session working directory
	Dir string `json:"dir" mapstructure:"dir"`
	// OutputLog receives the worker's combined output
	OutputLog string `json:"output_log" mapstructure:"output_log"`
}

// LoggingConfig holds supervisor logging settings
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// WatchConfig holds the cron schedule for `spinesq watch`
type WatchConfig struct {
	// Schedule is a five-field cron expression
	Schedule string `json:"schedule" mapstructure:"schedule"`
}

// DefaultConfig returns the configuration matching the lab's queue setup.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/tmp"
	}
	dataDir := filepath.Join(home, ".spinesq")
	queueDir := filepath.Join(home, "code", "SpinesGUI", "queue")

	return &Config{
		Session: SessionConfig{
			Name: "spines_queue",
			Command: []string{
				"python3", "-u", "worker.py",
				"--db", filepath.Join(queueDir, "jobs.sqlite"),
				"--poll", "2",
			},
			Dir:       queueDir,
			OutputLog: filepath.Join(dataDir, "logs", "worker.log"),
		},
		Logging: LoggingConfig{
			Level:   "info",
			File:    filepath.Join(dataDir, "spinesq.log"),
			Console: true,
			Pretty:  true,
		},
		Watch: WatchConfig{
			Schedule: "*/5 * * * *",
		},
		DataDir:   dataDir,
		LaunchLog: filepath.Join(dataDir, "launches.log"),
		JournalDB: filepath.Join(dataDir, "journal.sqlite"),
		LockFile:  filepath.Join(dataDir, "spinesq.lock"),
	}
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
