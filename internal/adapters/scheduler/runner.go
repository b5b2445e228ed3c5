// Package scheduler provides the adapter for running the shift reminder loop.
package scheduler

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

// Runner provides a simple adapter to run the upcoming shift reminder loop.
type Runner struct {
	reminders *service.ReminderService
	logger    *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB       *sql.DB
	Config   config.ReminderConfig
	Notifier notify.Sink
	Logger   *slog.Logger

	// Optional dependency injection for testing/decoupling
	Repo    core.ShiftSweepRepository
	Metrics statsd.Sink
}

// NewRunner creates a new reminder runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if err := validateRunnerOptions(&opts); err != nil {
		return nil, err
	}

	repo := opts.Repo
	if repo == nil {
		repo = data.NewShiftRepo(opts.DB)
	}

	reminders, err := service.NewReminderService(service.ReminderServiceOptions{
		Repo:     repo,
		Config:   opts.Config,
		Notifier: opts.Notifier,
		Logger:   opts.Logger,
		Metrics:  opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("wire reminder service: %w", err)
	}

	return &Runner{reminders: reminders, logger: opts.Logger}, nil
}

func validateRunnerOptions(opts *RunnerOptions) error {
	if opts.DB == nil && opts.Repo == nil {
		return errors.New("database connection is required")
	}
	if opts.Notifier == nil {
		return errors.New("notification sink is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return nil
}

// Run starts the reminder loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting shift reminder runner")
	return r.reminders.Run(ctx)
}
