package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the worker session",
	Long: `Kill the worker's tmux session. The supervisor never stops what it
launched on its own; this is the operator's teardown tool.`,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	name := a.cfg.Session.Name

	if err := a.tmux.Available(); err != nil {
		return err
	}

	exists, err := a.tmux.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s is not running\n", name)
		return nil
	}

	if err := a.tmux.Kill(name); err != nil {
		return err
	}

	a.log.Info().Str("session", name).Msg("session stopped")
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped session %s\n", name)
	return nil
}
