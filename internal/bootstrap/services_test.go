package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tarpehcare/portal/config"
	"github.com/tarpehcare/portal/internal/observability/notify"
	"github.com/tarpehcare/portal/internal/observability/notify/slack"
)

func TestBuildNotifierFallsBackToLogSink(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ObservabilityNotificationsConfig
	}{
		{
			name: "notifications disabled",
		},
		{
			name: "slack disabled",
			cfg: config.ObservabilityNotificationsConfig{
				Enabled: true,
			},
		},
		{
			name: "slack enabled without webhook",
			cfg: config.ObservabilityNotificationsConfig{
				Enabled: true,
				Slack:   config.SlackNotificationConfig{Enabled: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := buildNotifier(discardLogger(), tt.cfg)
			if sink == nil {
				t.Fatal("buildNotifier() = nil, want log sink")
			}
			if _, ok := sink.(*slack.Client); ok {
				t.Fatal("buildNotifier() returned a slack client, want log sink")
			}
			event := notify.Event{Kind: notify.KindIntakeReceived, Title: "New intake submission"}
			if err := sink.Send(context.Background(), event); err != nil {
				t.Fatalf("log sink Send() error = %v", err)
			}
		})
	}
}

func TestBuildNotifierPrefersSlack(t *testing.T) {
	sink := buildNotifier(discardLogger(), config.ObservabilityNotificationsConfig{
		Enabled:    true,
		Timeout:    time.Second,
		RetryLimit: 1,
		Slack: config.SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/T000/B000/XXXX",
			Channel:    "#care-ops",
			Username:   "tarpehcare",
		},
	})

	if _, ok := sink.(*slack.Client); !ok {
		t.Fatalf("buildNotifier() = %T, want *slack.Client", sink)
	}
}

func TestNewServicesWiresContainer(t *testing.T) {
	cfg := &config.AppConfig{
		Auth: config.AuthConfig{
			Mode:       config.AuthModePassword,
			AdminEmail: "owner@example.com",
		},
	}
	cfg.Sanitize()

	services := NewServices(&ServiceDeps{
		Config:      cfg,
		DB:          openUnconnectedDB(t),
		RedisClient: redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
		Logger:      discardLogger(),
	})

	if services.Auth == nil {
		t.Fatal("Auth service not wired")
	}
	if services.Clients == nil || services.Caregivers == nil || services.Families == nil {
		t.Fatal("directory services not wired")
	}
	if services.Shifts == nil || services.Messages == nil || services.Submissions == nil {
		t.Fatal("portal services not wired")
	}
	if services.Observability.Notifier == nil {
		t.Fatal("notifier not wired")
	}
	if services.Observability.MetricsSink != nil {
		t.Fatal("metrics sink wired despite metrics being disabled")
	}
}
