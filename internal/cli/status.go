package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show worker session status",
	Long:  `Show whether the worker session is live and the most recent launch record.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	name := a.cfg.Session.Name

	if err := a.tmux.Available(); err != nil {
		return err
	}

	exists, err := a.tmux.Exists(name)
	if err != nil {
		return err
	}

	if exists {
		fmt.Fprintf(out, "Session: %s\nStatus: running\n", name)
	} else {
		fmt.Fprintf(out, "Session: %s\nStatus: stopped\n", name)
	}

	if a.store != nil {
		records, err := a.store.Recent(name, 1)
		if err != nil {
			a.log.Warn().Err(err).Msg("failed to read launch journal")
		} else if len(records) > 0 {
			rec := records[0]
			fmt.Fprintf(out, "Last launch event: %s at %s (invocation %s)\n",
				rec.Kind, rec.Time.Local().Format(time.RFC3339), rec.InvocationID)
		}
	}

	return nil
}
