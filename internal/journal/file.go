package journal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSink appends launch records to a text log file, one line per record.
// A failed append degrades to the fallback writer (stderr by default) so a
// broken log never blocks the start attempt.
type FileSink struct {
	path     string
	fallback io.Writer
}

// NewFileSink creates a sink writing to path. The parent directory is created
// on first append if missing.
func NewFileSink(path string) *FileSink {
	return &FileSink{
		path:     path,
		fallback: os.Stderr,
	}
}

// SetFallback overrides the writer used when the log file cannot be appended.
func (s *FileSink) SetFallback(w io.Writer) {
	s.fallback = w
}

// Append writes one record line. On failure the line is written to the
// fallback writer and the original error is returned so callers can report
// the degradation without treating it as fatal.
func (s *FileSink) Append(rec Record) error {
	line := rec.Line() + "\n"

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		fmt.Fprint(s.fallback, line)
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprint(s.fallback, line)
		return fmt.Errorf("failed to open launch log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		fmt.Fprint(s.fallback, line)
		return fmt.Errorf("failed to append launch record: %w", err)
	}
	return nil
}

// Path returns the log file path.
func (s *FileSink) Path() string {
	return s.path
}
