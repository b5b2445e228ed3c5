package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/tarpehcare/portal/config"
	"github.com/tarpehcare/portal/internal/data"
	"github.com/tarpehcare/portal/internal/observability/notify"
	"github.com/tarpehcare/portal/internal/observability/notify/slack"
	"github.com/tarpehcare/portal/internal/observability/statsd"
	"github.com/tarpehcare/portal/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Clients       *service.ClientService
	Caregivers    *service.CaregiverService
	Families      *service.FamilyService
	Shifts        *service.ShiftService
	Messages      *service.MessageService
	Submissions   *service.SubmissionService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink    *statsd.Client
	MetricsConfig  config.ObservabilityMetricsConfig
	Notifier       notify.Sink
	NotifierConfig config.ObservabilityNotificationsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB            *sql.DB
	Redis         redis.UniversalClient
	ClientRepo    *data.ClientRepo
	CaregiverRepo *data.CaregiverRepo
	FamilyRepo    *data.FamilyMemberRepo
	ShiftRepo     *data.ShiftRepo
	MessageRepo   *data.MessageRepo
	IntakeRepo    *data.IntakeRepo
	BookingRepo   *data.BookingRepo
}

// buildObservability configures metrics and notification adapters.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.StatsdPrefix,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:    metricsSink,
		MetricsConfig:  cfg.Metrics,
		Notifier:       buildNotifier(obsLogger, cfg.Notifications),
		NotifierConfig: cfg.Notifications,
	}
}

// buildNotifier wires the Slack webhook sink when notifications are enabled.
// A log-only sink is returned otherwise so callers never need a nil check.
//
//nolint:ireturn // returning notify.Sink keeps the fallback sink interchangeable with Slack.
func buildNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) notify.Sink {
	if cfg.Enabled && cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL: cfg.Slack.WebhookURL,
			Channel:    cfg.Slack.Channel,
			Username:   cfg.Slack.Username,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			logger.Error("failed to initialise slack notifier", "error", err)
		} else {
			return client
		}
	}

	notifyLogger := logger.With("component", "notifier")
	return notify.SinkFunc(func(ctx context.Context, event notify.Event) error {
		notifyLogger.InfoContext(ctx, "notification", "kind", event.Kind, "title", event.Title)
		return nil
	})
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	return &serviceRepositories{
		DB:            db,
		Redis:         redisClient,
		ClientRepo:    data.NewClientRepo(db),
		CaregiverRepo: data.NewCaregiverRepo(db),
		FamilyRepo:    data.NewFamilyMemberRepo(db),
		ShiftRepo:     data.NewShiftRepo(db),
		MessageRepo:   data.NewMessageRepo(db),
		IntakeRepo:    data.NewIntakeRepo(db),
		BookingRepo:   data.NewBookingRepo(db),
	}
}

// DomainServicesOptions groups inputs for buildDomainServices.
type DomainServicesOptions struct {
	Repos         *serviceRepositories
	Observability ObservabilityContainer
	Config        *config.AppConfig
	Logger        *slog.Logger
}

// buildDomainServices wires business services using repositories and observability adapters.
func buildDomainServices(opts *DomainServicesOptions) ServiceContainer {
	if opts == nil {
		return ServiceContainer{}
	}
	svcLogger := opts.Logger
	if svcLogger == nil {
		svcLogger = slog.Default()
	}

	appCfg := opts.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	authService := BuildAuthService(AuthConfig{
		Auth:        appCfg.Auth,
		DB:          opts.Repos.DB,
		RedisClient: opts.Repos.Redis,
		Metrics:     opts.Observability.MetricsSink,
		Logger:      svcLogger,
	})

	return ServiceContainer{
		Auth:       authService,
		Clients:    service.NewClientService(service.ClientServiceOptions{Clients: opts.Repos.ClientRepo}),
		Caregivers: service.NewCaregiverService(service.CaregiverServiceOptions{Caregivers: opts.Repos.CaregiverRepo}),
		Families:   service.NewFamilyService(service.FamilyServiceOptions{Members: opts.Repos.FamilyRepo}),
		Shifts: service.NewShiftService(service.ShiftServiceOptions{
			Shifts:  opts.Repos.ShiftRepo,
			Metrics: opts.Observability.MetricsSink,
		}),
		Messages: service.NewMessageService(service.MessageServiceOptions{
			Messages: opts.Repos.MessageRepo,
			Shifts:   opts.Repos.ShiftRepo,
		}),
		Submissions: service.NewSubmissionService(service.SubmissionServiceOptions{
			Intakes:  opts.Repos.IntakeRepo,
			Bookings: opts.Repos.BookingRepo,
			Notifier: opts.Observability.Notifier,
			Logger:   svcLogger,
		}),
		Observability: opts.Observability,
	}
}

// NewServices wires the full service container from shared infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var obsCfg config.ObservabilityConfig
	if deps.Config != nil {
		obsCfg = deps.Config.Observability
	}
	observability := buildObservability(logger, obsCfg)
	repos := buildRepositories(deps.DB, deps.RedisClient)
	return buildDomainServices(&DomainServicesOptions{
		Repos:         repos,
		Observability: observability,
		Config:        deps.Config,
		Logger:        logger,
	})
}
