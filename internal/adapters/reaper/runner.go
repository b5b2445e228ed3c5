// Package reaper provides the adapter for running the missed shift sweep.
package reaper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tarpehcare/portal/config"
	"github.com/tarpehcare/portal/internal/core"
	"github.com/tarpehcare/portal/internal/data"
	"github.com/tarpehcare/portal/internal/observability/notify"
	"github.com/tarpehcare/portal/internal/observability/statsd"
	"github.com/tarpehcare/portal/internal/service"
)

// Runner provides a simple adapter to run the missed shift sweep loop.
type Runner struct {
	sweeper *service.MissedShiftService
	logger  *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB     *sql.DB
	Config config.ReaperConfig
	Logger *slog.Logger

	// Optional dependency injection for testing/decoupling
	Repo     core.ShiftSweepRepository
	Metrics  statsd.Sink
	Notifier notify.Sink
}

// NewRunner creates a new reaper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if err := validateRunnerOptions(&opts); err != nil {
		return nil, err
	}

	repo := opts.Repo
	if repo == nil {
		repo = data.NewShiftRepo(opts.DB)
	}

	sweeper, err := service.NewMissedShiftService(service.MissedShiftServiceOptions{
		Repo:     repo,
		Config:   opts.Config,
		Logger:   opts.Logger,
		Metrics:  opts.Metrics,
		Notifier: opts.Notifier,
	})
	if err != nil {
		return nil, fmt.Errorf("wire missed shift service: %w", err)
	}

	return &Runner{sweeper: sweeper, logger: opts.Logger}, nil
}

func validateRunnerOptions(opts *RunnerOptions) error {
	if opts.DB == nil && opts.Repo == nil {
		return errors.New("database connection is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return nil
}

// Run starts the sweep loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting missed shift runner")
	return r.sweeper.Run(ctx)
}
