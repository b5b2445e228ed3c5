package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tarpehcare/portal/config"
	"github.com/tarpehcare/portal/internal/core"
	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/observability/metrics"
	"github.com/tarpehcare/portal/internal/observability/notify"
	"github.com/tarpehcare/portal/internal/observability/statsd"
)

// reminderBatchLimit caps how many upcoming shifts one tick will consider.
const reminderBatchLimit = 500

// ReminderServiceOptions groups dependencies for ReminderService.
type ReminderServiceOptions struct {
	Repo     core.ShiftSweepRepository // Required: sweep repository
	Config   config.ReminderConfig     // Required: reminder configuration
	Notifier notify.Sink               // Required: where reminders go
	Logger   *slog.Logger              // Optional: structured logger
	Metrics  statsd.Sink               // Optional: metrics sink (StatsD-compatible)
}

// ReminderService notifies the office about shifts starting within the lead
// window. Reminders are deduplicated in memory per shift id, so a restart may
// re-send reminders for shifts that are still upcoming.
type ReminderService struct {
	repo     core.ShiftSweepRepository
	config   config.ReminderConfig
	notifier notify.Sink
	logger   *slog.Logger
	metrics  statsd.Sink

	reminded map[string]time.Time // shift id -> starts_at, for pruning
}

// NewReminderService constructs a new ReminderService.
func NewReminderService(opts ReminderServiceOptions) (*ReminderService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ShiftSweepRepository is required")
	}
	if opts.Notifier == nil {
		return nil, errors.New("notification sink is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "shift_reminder")
		logger.Debug("ReminderService initialized",
			"interval", opts.Config.Interval,
			"lead_window", opts.Config.LeadWindow,
		)
	}

	return &ReminderService{
		repo:     opts.Repo,
		config:   opts.Config,
		notifier: opts.Notifier,
		logger:   logger,
		metrics:  opts.Metrics,
		reminded: make(map[string]time.Time),
	}, nil
}

// Run starts the reminder loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *ReminderService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting shift reminders",
			"interval", s.config.Interval,
			"lead_window", s.config.LeadWindow,
		)
	}

	waitWithJitter(ctx, s.config.Interval, s.logger)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if err := s.runTick(ctx); err != nil {
		s.logTickError(err, "initial tick")
	}

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "shift reminders stopping", "reason", ctx.Err())
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if err := s.runTick(ctx); err != nil {
				s.logTickError(err, "tick")
				// Continue running despite errors
			}
		}
	}
}

// runTick finds shifts starting within the lead window and sends one
// reminder per shift.
func (s *ReminderService) runTick(ctx context.Context) error {
	start := time.Now()
	s.prune(start)

	shifts, err := s.repo.ListUpcoming(ctx, s.config.LeadWindow, reminderBatchLimit)
	if err != nil {
		if isContextCancellation(err) {
			return context.Canceled
		}
		return fmt.Errorf("list upcoming shifts: %w", err)
	}

	var sent int
	for _, shift := range shifts {
		if _, seen := s.reminded[shift.ID]; seen {
			continue
		}
		if err := s.sendReminder(ctx, shift); err != nil {
			if isContextCancellation(err) {
				return context.Canceled
			}
			if s.logger != nil {
				s.logger.WarnContext(ctx, "reminder send failed",
					"shift_id", shift.ID,
					"error", err,
				)
			}
			// Retry on the next tick; the shift stays out of the seen set
			continue
		}
		s.reminded[shift.ID] = shift.StartsAt
		sent++
	}

	metrics.EmitSweepDuration(s.metrics, "shift_reminders", time.Since(start))
	if sent > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "sent shift reminders", "count", sent)
	}

	return nil
}

func (s *ReminderService) sendReminder(ctx context.Context, shift *model.Shift) error {
	return s.notifier.Send(ctx, notify.Event{
		Kind:       notify.KindShiftReminder,
		Title:      "Upcoming shift",
		OccurredAt: time.Now(),
		Fields: map[string]string{
			"shift_id":  shift.ID,
			"starts_at": shift.StartsAt.UTC().Format(time.RFC3339),
			"caregiver": shift.CaregiverID,
			"client":    shift.ClientID,
		},
	})
}

// prune drops seen entries for shifts that have already started so the map
// does not grow without bound.
func (s *ReminderService) prune(now time.Time) {
	for id, startsAt := range s.reminded {
		if startsAt.Before(now) {
			delete(s.reminded, id)
		}
	}
}

func (s *ReminderService) logTickError(err error, operation string) {
	if s.logger == nil || isContextCancellation(err) {
		return
	}
	s.logger.Error("reminder tick failed", "operation", operation, "error", err)
}
