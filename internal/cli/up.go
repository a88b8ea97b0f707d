package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spineslab/spinesq/internal/supervisor"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Ensure the worker session is running",
	Long: `Ensure exactly one instance of the worker session is running.
Starts a detached tmux session when absent; does nothing when present.
This is also what running spinesq with no arguments does.`,
	RunE: runUp,
}

func init() {
	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.sup.EnsureRunning(cmd.Context(), a.spec())
	if err != nil {
		return err
	}

	if res.LogErr != nil {
		a.log.Warn().Err(res.LogErr).Msg("launch journal degraded")
	}

	switch res.Status {
	case supervisor.StatusStarted:
		fmt.Fprintf(cmd.OutOrStdout(), "Started session %s\n", res.Session)
	case supervisor.StatusAlreadyRunning:
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s already running\n", res.Session)
	}
	return nil
}
