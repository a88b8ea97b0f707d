package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Loader handles configuration loading
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// defaultPath returns the conventional config location.
func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".spinesq", "spinesq.json"), nil
}

// Load loads the configuration from file. A missing file yields the default
// configuration; a present file is schema-validated before unmarshal.
func (l *Loader) Load() (*Config, error) {
	configPath := l.configPath
	if configPath == "" {
		var err error
		configPath, err = defaultPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Reject malformed files before viper merges them over the defaults
	if err := ValidateSchema(configPath); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	v.SetEnvPrefix("SPINESQ")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Re-root derived paths when only data_dir was overridden
	if cfg.DataDir != "" {
		if cfg.LaunchLog == "" {
			cfg.LaunchLog = filepath.Join(cfg.DataDir, "launches.log")
		}
		if cfg.JournalDB == "" {
			cfg.JournalDB = filepath.Join(cfg.DataDir, "journal.sqlite")
		}
		if cfg.LockFile == "" {
			cfg.LockFile = filepath.Join(cfg.DataDir, "spinesq.lock")
		}
		if cfg.Logging.File == "" {
			cfg.Logging.File = filepath.Join(cfg.DataDir, "spinesq.log")
		}
	}

	return cfg, nil
}

// Save saves the configuration to file
func (l *Loader) Save(cfg *Config) error {
	configPath := l.configPath
	if configPath == "" {
		var err error
		configPath, err = defaultPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(cfg.String()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
