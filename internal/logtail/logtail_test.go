package logtail

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTail(t *testing.T) {
	t.Run("missing file yields empty", func(t *testing.T) {
		text, err := Tail(filepath.Join(t.TempDir(), "nope.log"), 100)
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("small file returned whole", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "worker.log")
		require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0644))

		text, err := Tail(path, 1000)
		require.NoError(t, err)
		assert.Equal(t, "line one\nline two\n", text)
	})

	t.Run("large file truncated to tail with whole lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "worker.log")
		var b strings.Builder
		for i := 0; i < 100; i++ {
			b.WriteString("0123456789\n")
		}
		require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

		text, err := Tail(path, 50)
		require.NoError(t, err)
		assert.NotEmpty(t, text)
		assert.Less(t, len(text), 50)
		// partial first line was dropped
		assert.True(t, strings.HasPrefix(text, "0123456789\n"))
	})
}

// syncBuffer lets the Follow goroutine and assertions share a buffer
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestFollow(t *testing.T) {
	t.Run("streams appended bytes", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "worker.log")
		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var out syncBuffer
		done := make(chan error, 1)
		go func() {
			done <- Follow(ctx, path, &out)
		}()

		// Give the watcher time to register, then append
		time.Sleep(100 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
		require.NoError(t, err)
		_, err = f.WriteString("new line\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), "new line")
		}, 3*time.Second, 20*time.Millisecond)

		// existing content is not replayed
		assert.NotContains(t, out.String(), "old")

		cancel()
		err = <-done
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("picks up file created after start", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "worker.log")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var out syncBuffer
		go func() {
			_ = Follow(ctx, path, &out)
		}()

		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(path, []byte("born later\n"), 0644))

		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), "born later")
		}, 3*time.Second, 20*time.Millisecond)
	})
}
