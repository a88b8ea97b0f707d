package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	t.Run("all subcommands registered", func(t *testing.T) {
		cmd := GetRootCmd()

		names := map[string]bool{}
		for _, c := range cmd.Commands() {
			names[c.Name()] = true
		}

		for _, want := range []string{"up", "status", "stop", "logs", "history", "watch", "init"} {
			assert.True(t, names[want], "command %s should exist", want)
		}
	})

	t.Run("root runs the launch check by default", func(t *testing.T) {
		cmd := GetRootCmd()
		assert.NotNil(t, cmd.RunE, "bare spinesq must perform one launch check")
	})

	t.Run("up help text", func(t *testing.T) {
		cmd := GetRootCmd()
		cmd.SetArgs([]string{"up", "--help"})

		output := &bytes.Buffer{}
		cmd.SetOut(output)

		err := cmd.Execute()
		require.NoError(t, err)
		assert.Contains(t, output.String(), "Ensure exactly one instance")
	})

	t.Run("logs flags", func(t *testing.T) {
		assert.NotNil(t, logsCmd.Flags().Lookup("follow"))
		assert.NotNil(t, logsCmd.Flags().Lookup("lines"))
	})

	t.Run("history flags", func(t *testing.T) {
		assert.NotNil(t, historyCmd.Flags().Lookup("limit"))
	})
}

func TestLastLines(t *testing.T) {
	t.Run("fewer lines than limit", func(t *testing.T) {
		assert.Equal(t, "a\nb\n", lastLines("a\nb\n", 5))
	})

	t.Run("trims to limit", func(t *testing.T) {
		assert.Equal(t, "c\nd\n", lastLines("a\nb\nc\nd\n", 2))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", lastLines("", 3))
		assert.Equal(t, "", lastLines("\n", 3))
	})

	t.Run("unterminated final line", func(t *testing.T) {
		assert.Equal(t, "b\nc\n", lastLines("a\nb\nc", 2))
	})
}

func TestInitCommand(t *testing.T) {
	runInitAt := func(t *testing.T, args ...string) error {
		t.Helper()
		cmd := GetRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&bytes.Buffer{})
		return cmd.Execute()
	}

	t.Run("writes config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spinesq.json")

		require.NoError(t, runInitAt(t, "init", "--config", path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "spines_queue")
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spinesq.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

		err := runInitAt(t, "init", "--config", path)
		assert.Error(t, err)
	})

	t.Run("force overwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spinesq.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

		require.NoError(t, runInitAt(t, "init", "--config", path, "--force"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "spines_queue")
	})
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}
