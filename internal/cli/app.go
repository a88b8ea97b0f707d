package cli

import (
	"fmt"
	"time"

	"github.com/spineslab/spinesq/internal/config"
	"github.com/spineslab/spinesq/internal/journal"
	"github.com/spineslab/spinesq/internal/logger"
	"github.com/spineslab/spinesq/internal/supervisor"
	"github.com/spineslab/spinesq/internal/tmux"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	tmux  *tmux.Manager
	store *journal.Store
	sup   *supervisor.Supervisor
}

// newApp loads and validates configuration and wires the supervisor.
func newApp() (*app, error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return nil, err
	}

	mgr := tmux.NewManager("")

	// A broken journal store degrades to the text sink only
	store, err := journal.NewStore(cfg.JournalDB)
	if err != nil {
		log.Warn().Err(err).Msg("launch journal store unavailable")
		store = nil
	}

	sup, err := supervisor.New(supervisor.Config{
		Sessions:    mgr,
		Sink:        journal.NewFileSink(cfg.LaunchLog),
		Store:       store,
		LockPath:    cfg.LockFile,
		Logger:      log.GetZerolog(),
		VerifyDelay: 200 * time.Millisecond,
	})
	if err != nil {
		log.Close()
		return nil, err
	}

	return &app{
		cfg:   cfg,
		log:   log,
		tmux:  mgr,
		store: store,
		sup:   sup,
	}, nil
}

// spec builds the supervisor spec from configuration.
func (a *app) spec() supervisor.Spec {
	return supervisor.Spec{
		Name:      a.cfg.Session.Name,
		Command:   a.cfg.Session.Command,
		Dir:       a.cfg.Session.Dir,
		OutputLog: a.cfg.Session.OutputLog,
	}
}

// close releases the app's resources.
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.log != nil {
		a.log.Close()
	}
}
