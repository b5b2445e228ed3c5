package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/tarpehcare/portal/config"
	"github.com/tarpehcare/portal/internal/adapters/reaper"
	"github.com/tarpehcare/portal/internal/adapters/scheduler"
	"golang.org/x/sync/errgroup"
)

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if enabled[config.ServiceModeHTTP] {
		server := StartHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
		})
		g.Go(func() error {
			<-gctx.Done()
			return ShutdownHTTPServer(ShutdownConfig{
				Context: context.Background(),
				Server:  server,
				Timeout: cfg.Config.HTTP.ShutdownTimeout,
				Logger:  logger,
			})
		})
	}

	if enabled[config.ServiceModeReaper] {
		runner, rerr := reaper.NewRunner(reaper.RunnerOptions{
			DB:       cfg.DB,
			Config:   cfg.Config.Reaper,
			Logger:   logger,
			Metrics:  cfg.Services.Observability.MetricsSink,
			Notifier: cfg.Services.Observability.Notifier,
		})
		if rerr != nil {
			return fmt.Errorf("wire reaper: %w", rerr)
		}
		g.Go(func() error {
			if runErr := runner.Run(gctx); runErr != nil {
				return fmt.Errorf("reaper failed: %w", runErr)
			}
			return nil
		})
	}

	if enabled[config.ServiceModeReminder] {
		runner, rerr := scheduler.NewRunner(scheduler.RunnerOptions{
			DB:       cfg.DB,
			Config:   cfg.Config.Reminder,
			Notifier: cfg.Services.Observability.Notifier,
			Logger:   logger,
			Metrics:  cfg.Services.Observability.MetricsSink,
		})
		if rerr != nil {
			return fmt.Errorf("wire reminder: %w", rerr)
		}
		g.Go(func() error {
			if runErr := runner.Run(gctx); runErr != nil {
				return fmt.Errorf("reminder failed: %w", runErr)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("services stopped")
	return nil
}
