package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeReaper runs the missed shift reaper.
	ServiceModeReaper ServiceMode = "reaper"
	// ServiceModeReminder runs the upcoming shift reminder sweep.
	ServiceModeReminder ServiceMode = "reminder"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeReaper,
		ServiceModeReminder,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	for _, part := range strings.Split(servicesStr, ",") {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeReaper, ServiceModeReminder:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, reaper, reminder)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// ReaperConfig contains missed shift reaper configuration.
type ReaperConfig struct {
	// Interval is the reaper tick interval.
	Interval time.Duration `env:"REAPER_INTERVAL" envDefault:"5m"`

	// GracePeriod is how long past its scheduled end a shift may stay
	// untouched before it is marked missed.
	GracePeriod time.Duration `env:"REAPER_GRACE_PERIOD" envDefault:"30m"`

	// BatchSize is the maximum number of shifts updated per sweep.
	BatchSize int `env:"REAPER_BATCH_SIZE" envDefault:"100"`
}

// Sanitize applies guardrails to reaper configuration values.
func (r *ReaperConfig) Sanitize() {
	if r.Interval < time.Minute {
		r.Interval = time.Minute
	}
	if r.GracePeriod < 0 {
		r.GracePeriod = 0
	}
	if r.BatchSize < 1 {
		r.BatchSize = 1
	}
}

// ReminderConfig contains upcoming shift reminder configuration.
type ReminderConfig struct {
	// Interval is the reminder sweep tick interval.
	Interval time.Duration `env:"REMINDER_INTERVAL" envDefault:"10m"`

	// LeadWindow is how far ahead of a shift's start the reminder fires.
	LeadWindow time.Duration `env:"REMINDER_LEAD_WINDOW" envDefault:"1h"`
}

// Sanitize applies guardrails to reminder configuration values.
func (r *ReminderConfig) Sanitize() {
	if r.Interval < time.Minute {
		r.Interval = time.Minute
	}
	if r.LeadWindow < r.Interval {
		// A lead window shorter than the tick would skip shifts entirely.
		r.LeadWindow = r.Interval
	}
}
