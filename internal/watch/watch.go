// Package watch re-invokes the supervisor on a cron schedule. Each tick is
// an independent, idempotent EnsureRunning call, so a worker that died since
// the last tick is relaunched and a healthy one is left alone.
package watch

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// EnsureFunc is invoked on every schedule tick.
type EnsureFunc func(ctx context.Context) error

// Service runs EnsureFunc on a five-field cron schedule.
type Service struct {
	schedule string
	ensure   EnsureFunc
	logger   zerolog.Logger
}

// NewService creates the watch service. The schedule is validated here so a
// bad expression fails at startup, not at first tick.
func NewService(schedule string, ensure EnsureFunc, logger zerolog.Logger) (*Service, error) {
	if schedule == "" {
		return nil, fmt.Errorf("watch schedule cannot be empty")
	}
	if ensure == nil {
		return nil, fmt.Errorf("ensure function is required")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("invalid watch schedule %q: %w", schedule, err)
	}

	return &Service{
		schedule: schedule,
		ensure:   ensure,
		logger:   logger.With().Str("component", "watch").Logger(),
	}, nil
}

// Run ticks until ctx is done. One immediate invocation happens before the
// first scheduled tick so a freshly started watch never waits a full period.
func (s *Service) Run(ctx context.Context) error {
	s.tick(ctx)

	c := cron.New()
	_, err := c.AddFunc(s.schedule, func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to register schedule: %w", err)
	}

	c.Start()
	s.logger.Info().Str("schedule", s.schedule).Msg("watch started")

	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	s.logger.Info().Msg("watch stopped")
	return ctx.Err()
}

func (s *Service) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.ensure(ctx); err != nil {
		s.logger.Error().Err(err).Msg("scheduled launch check failed")
	}
}
