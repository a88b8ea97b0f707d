package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spineslab/spinesq/internal/watch"
)

var watchSchedule string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the launch check on a schedule",
	Long: `Run the launch check on a cron schedule until interrupted. Each tick
is idempotent, so a dead worker is relaunched and a live one is untouched.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "cron schedule (overrides config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	schedule := a.cfg.Watch.Schedule
	if watchSchedule != "" {
		schedule = watchSchedule
	}

	svc, err := watch.NewService(schedule, func(ctx context.Context) error {
		res, err := a.sup.EnsureRunning(ctx, a.spec())
		if err != nil {
			return err
		}
		if res.LogErr != nil {
			a.log.Warn().Err(res.LogErr).Msg("launch journal degraded")
		}
		return nil
	}, a.log.GetZerolog())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
