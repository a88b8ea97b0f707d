package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spineslab/spinesq/internal/logtail"
)

var (
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show worker output",
	Long:  `Print the tail of the worker's output log, optionally following new output.`,
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "keep streaming new output")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "number of trailing lines to print")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	path := a.cfg.Session.OutputLog
	out := cmd.OutOrStdout()

	text, err := logtail.Tail(path, logtail.DefaultTailBytes)
	if err != nil {
		return err
	}
	fmt.Fprint(out, lastLines(text, logsLines))

	if !logsFollow {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := logtail.Follow(ctx, path, out); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// lastLines keeps the trailing n lines of text, newline-terminated.
func lastLines(text string, n int) string {
	if text == "" || n <= 0 {
		return ""
	}
	trimmed := strings.TrimRight(text, "\n")
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n") + "\n"
}
