package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "spines_queue", cfg.Session.Name)
	assert.NotEmpty(t, cfg.Session.Command)
	assert.Equal(t, "python3", cfg.Session.Command[0])
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.LaunchLog)
	assert.NotEmpty(t, cfg.JournalDB)
	assert.NotEmpty(t, cfg.LockFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Watch.Schedule)

	// defaults must pass their own validation and schema
	require.NoError(t, NewValidator().Validate(cfg))
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NoError(t, ValidateSchemaBytes(data))
}

func TestLoader(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		loader := NewLoader(filepath.Join(t.TempDir(), "absent.json"))
		cfg, err := loader.Load()
		require.NoError(t, err)
		assert.Equal(t, "spines_queue", cfg.Session.Name)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spinesq.json")
		content := `{
			"session": {
				"name": "other_worker",
				"command": ["sleep", "60"],
				"dir": "/tmp"
			},
			"logging": {"level": "debug"}
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := NewLoader(path).Load()
		require.NoError(t, err)
		assert.Equal(t, "other_worker", cfg.Session.Name)
		assert.Equal(t, []string{"sleep", "60"}, cfg.Session.Command)
		assert.Equal(t, "debug", cfg.Logging.Level)
		// untouched fields keep their defaults
		assert.NotEmpty(t, cfg.LockFile)
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spinesq.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := NewLoader(path).Load()
		assert.Error(t, err)
	})

	t.Run("schema violation rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spinesq.json")
		// command must be an array of strings, not a string
		content := `{"session": {"name": "x", "command": "python3 worker.py"}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		_, err := NewLoader(path).Load()
		assert.Error(t, err)
	})

	t.Run("save and reload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "spinesq.json")
		loader := NewLoader(path)

		cfg := DefaultConfig()
		cfg.Session.Name = "saved_worker"
		require.NoError(t, loader.Save(cfg))

		reloaded, err := loader.Load()
		require.NoError(t, err)
		assert.Equal(t, "saved_worker", reloaded.Session.Name)
	})
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	t.Run("session name", func(t *testing.T) {
		assert.NoError(t, v.ValidateSessionName("spines_queue"))
		assert.NoError(t, v.ValidateSessionName("worker-1"))
		assert.Error(t, v.ValidateSessionName(""))
		assert.Error(t, v.ValidateSessionName("has space"))
		assert.Error(t, v.ValidateSessionName("a.b"))
		assert.Error(t, v.ValidateSessionName("a:b"))
	})

	t.Run("command", func(t *testing.T) {
		assert.NoError(t, v.ValidateCommand([]string{"python3", "worker.py"}))
		assert.Error(t, v.ValidateCommand(nil))
		assert.Error(t, v.ValidateCommand([]string{""}))
	})

	t.Run("log level", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			assert.NoError(t, v.ValidateLogLevel(level))
		}
		assert.Error(t, v.ValidateLogLevel("verbose"))
		assert.Error(t, v.ValidateLogLevel(""))
	})

	t.Run("schedule", func(t *testing.T) {
		assert.NoError(t, v.ValidateSchedule("*/5 * * * *"))
		assert.NoError(t, v.ValidateSchedule("0 3 * * 1"))
		assert.Error(t, v.ValidateSchedule("every 5 minutes"))
	})

	t.Run("whole config", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, v.Validate(cfg))

		bad := DefaultConfig()
		bad.Session.Command = nil
		assert.Error(t, v.Validate(bad))

		bad = DefaultConfig()
		bad.LockFile = ""
		assert.Error(t, v.Validate(bad))
	})
}

func TestValidateSchemaBytes(t *testing.T) {
	t.Run("accepts empty object", func(t *testing.T) {
		assert.NoError(t, ValidateSchemaBytes([]byte(`{}`)))
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		assert.Error(t, ValidateSchemaBytes([]byte(`{"sesion": {}}`)))
	})

	t.Run("rejects wrong types", func(t *testing.T) {
		assert.Error(t, ValidateSchemaBytes([]byte(`{"logging": {"console": "yes"}}`)))
		assert.Error(t, ValidateSchemaBytes([]byte(`{"logging": {"level": "loud"}}`)))
		assert.Error(t, ValidateSchemaBytes([]byte(`{"session": {"command": []}}`)))
	})
}
