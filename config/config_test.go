package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:  "single service - http",
			input: "http",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP: true,
			},
		},
		{
			name:  "single service - reaper",
			input: "reaper",
			expected: map[ServiceMode]bool{
				ServiceModeReaper: true,
			},
		},
		{
			name:  "all services",
			input: "http,reaper,reminder",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:     true,
				ServiceModeReaper:   true,
				ServiceModeReminder: true,
			},
		},
		{
			name:  "services with spaces",
			input: " http , reaper ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:   true,
				ServiceModeReaper: true,
			},
		},
		{
			name:  "duplicate services",
			input: "http,http,reminder",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:     true,
				ServiceModeReminder: true,
			},
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "only spaces and commas",
			input:       " , , ",
			expectError: true,
		},
		{
			name:        "invalid service name",
			input:       "http,invalid-service",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	tests := []struct {
		name             string
		services         string
		expectedHTTP     bool
		expectedReaper   bool
		expectedReminder bool
	}{
		{
			name:         "default - http only",
			services:     "http",
			expectedHTTP: true,
		},
		{
			name:           "http and reaper",
			services:       "http,reaper",
			expectedHTTP:   true,
			expectedReaper: true,
		},
		{
			name:             "reminder only",
			services:         "reminder",
			expectedReminder: true,
		},
		{
			name:     "invalid services disable everything",
			services: "bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{Services: tt.services}
			if got := cfg.IsHTTPServerEnabled(); got != tt.expectedHTTP {
				t.Errorf("IsHTTPServerEnabled = %v, want %v", got, tt.expectedHTTP)
			}
			if got := cfg.IsReaperEnabled(); got != tt.expectedReaper {
				t.Errorf("IsReaperEnabled = %v, want %v", got, tt.expectedReaper)
			}
			if got := cfg.IsReminderEnabled(); got != tt.expectedReminder {
				t.Errorf("IsReminderEnabled = %v, want %v", got, tt.expectedReminder)
			}
		})
	}
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "oidc")
	t.Setenv("AUTH_ADMIN_EMAIL", "owner@tarpehcare.com")
	t.Setenv("AUTH_SESSION_TTL", "6h")
	t.Setenv("OIDC_CLIENT_ID", "portal-client")
	t.Setenv("OIDC_CLIENT_SECRET", "super-secret")
	t.Setenv("OIDC_REDIRECT_URL", "https://portal.example.com/auth/callback")
	t.Setenv("OIDC_DISCOVERY_URL", "https://login.example.com/.well-known/openid-configuration")
	t.Setenv("OIDC_SCOPE", "openid profile email")
	t.Setenv("OIDC_EMAIL_CLAIM", "contact.mail")
	t.Setenv("DEV_AUTH_USER_ID", "dev-user")
	t.Setenv("DEV_AUTH_EMAIL", "dev@example.com")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode:       AuthModeOIDC,
		AdminEmail: "owner@tarpehcare.com",
		SessionTTL: 6 * time.Hour,
		CookieName: "portal_session",
		OIDC: OIDCConfig{
			ClientID:     "portal-client",
			ClientSecret: "super-secret",
			RedirectURL:  "https://portal.example.com/auth/callback",
			Scope:        "openid profile email",
			DiscoveryURL: "https://login.example.com/.well-known/openid-configuration",
			EmailClaim:   "contact.mail",
		},
		DevAuth: DevAuthConfig{
			UserID:    "dev-user",
			Email:     "dev@example.com",
			FirstName: "Dev",
			LastName:  "User",
		},
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	var m AuthMode
	if err := m.UnmarshalText([]byte("Password")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != AuthModePassword {
		t.Fatalf("expected password mode, got %q", m)
	}
	if err := m.UnmarshalText([]byte("saml")); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{AdminEmail: "  owner@example.com  ", SessionTTL: time.Second}
	cfg.Sanitize()
	if cfg.AdminEmail != "owner@example.com" {
		t.Errorf("AdminEmail not trimmed: %q", cfg.AdminEmail)
	}
	if cfg.SessionTTL != time.Minute {
		t.Errorf("SessionTTL not clamped: %v", cfg.SessionTTL)
	}
	if cfg.CookieName != "portal_session" {
		t.Errorf("CookieName not defaulted: %q", cfg.CookieName)
	}
}

func TestReaperConfig_Sanitize(t *testing.T) {
	cfg := ReaperConfig{Interval: time.Second, GracePeriod: -time.Hour, BatchSize: 0}
	cfg.Sanitize()
	if cfg.Interval != time.Minute {
		t.Errorf("Interval not clamped: %v", cfg.Interval)
	}
	if cfg.GracePeriod != 0 {
		t.Errorf("GracePeriod not clamped: %v", cfg.GracePeriod)
	}
	if cfg.BatchSize != 1 {
		t.Errorf("BatchSize not clamped: %d", cfg.BatchSize)
	}
}

func TestReminderConfig_Sanitize(t *testing.T) {
	cfg := ReminderConfig{Interval: 10 * time.Minute, LeadWindow: time.Minute}
	cfg.Sanitize()
	if cfg.LeadWindow != 10*time.Minute {
		t.Errorf("LeadWindow should be raised to the interval, got %v", cfg.LeadWindow)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "}
	cfg.Sanitize()
	if cfg.IsEnabled() {
		t.Fatal("metrics should be disabled without an address")
	}
}

func TestObservabilityNotificationsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityNotificationsConfig{
		Enabled: false,
		Slack:   SlackNotificationConfig{Enabled: true, WebhookURL: "https://hooks.slack.com/x"},
	}
	cfg.Sanitize()
	if cfg.Slack.Enabled {
		t.Fatal("slack should be disabled when notifications are globally disabled")
	}

	cfg = ObservabilityNotificationsConfig{
		Enabled: true,
		Slack:   SlackNotificationConfig{Enabled: true},
	}
	cfg.Sanitize()
	if cfg.Slack.Enabled {
		t.Fatal("slack should be disabled without a webhook URL")
	}
}
