package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/tarpehcare/portal/config"
	"github.com/tarpehcare/portal/internal/core"
	"github.com/tarpehcare/portal/internal/observability/metrics"
	"github.com/tarpehcare/portal/internal/observability/notify"
	"github.com/tarpehcare/portal/internal/observability/statsd"
)

// MissedShiftServiceOptions groups dependencies for MissedShiftService.
type MissedShiftServiceOptions struct {
	Repo     core.ShiftSweepRepository // Required: sweep repository
	Config   config.ReaperConfig       // Required: sweep configuration
	Logger   *slog.Logger              // Optional: structured logger
	Metrics  statsd.Sink               // Optional: metrics sink (StatsD-compatible)
	Notifier notify.Sink               // Optional: office notifications
}

// MissedShiftService sweeps scheduled shifts whose window plus grace period
// has elapsed without a check-in and marks them missed, so a caregiver who
// never showed up is visible to the office without manual review.
type MissedShiftService struct {
	repo     core.ShiftSweepRepository
	config   config.ReaperConfig
	logger   *slog.Logger
	metrics  statsd.Sink
	notifier notify.Sink
}

// NewMissedShiftService constructs a new MissedShiftService.
func NewMissedShiftService(opts MissedShiftServiceOptions) (*MissedShiftService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ShiftSweepRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "missed_shift_sweep")
		logger.Debug("MissedShiftService initialized",
			"interval", opts.Config.Interval,
			"grace_period", opts.Config.GracePeriod,
			"batch_size", opts.Config.BatchSize,
		)
	}

	return &MissedShiftService{
		repo:     opts.Repo,
		config:   opts.Config,
		logger:   logger,
		metrics:  opts.Metrics,
		notifier: opts.Notifier,
	}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *MissedShiftService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting missed shift sweep", "interval", s.config.Interval)
	}

	// Add jitter to prevent thundering herd if multiple instances start together
	waitWithJitter(ctx, s.config.Interval, s.logger)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if err := s.runSweep(ctx); err != nil {
		s.logSweepError(err, "initial sweep")
	}

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "missed shift sweep stopping", "reason", ctx.Err())
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if err := s.runSweep(ctx); err != nil {
				s.logSweepError(err, "sweep")
				// Continue running despite errors
			}
		}
	}
}

// runSweep marks overdue shifts in batches until no rows remain.
func (s *MissedShiftService) runSweep(ctx context.Context) error {
	start := time.Now()

	var total int64
	for {
		count, err := s.repo.MarkMissedShifts(ctx, s.config.GracePeriod, s.config.BatchSize)
		if err != nil {
			s.emitSweep(total, time.Since(start), err)
			if isContextCancellation(err) {
				return context.Canceled
			}
			return fmt.Errorf("mark missed shifts: %w", err)
		}
		total += count
		if count == 0 {
			break
		}
		// Check context between batches
		if ctx.Err() != nil {
			s.emitSweep(total, time.Since(start), ctx.Err())
			return context.Canceled
		}
	}

	s.emitSweep(total, time.Since(start), nil)

	if total > 0 {
		if s.logger != nil {
			s.logger.InfoContext(ctx, "marked missed shifts",
				"count", total,
				"grace_period", s.config.GracePeriod,
			)
		}
		s.notifyMissed(ctx, total)
	}

	return nil
}

func (s *MissedShiftService) emitSweep(count int64, elapsed time.Duration, err error) {
	if err != nil && !isContextCancellation(err) {
		metrics.EmitShiftTransition(s.metrics, "missed", metrics.ResultError, 1)
	} else {
		metrics.EmitShiftTransition(s.metrics, "missed", metrics.ResultSuccess, count)
	}
	metrics.EmitSweepDuration(s.metrics, "missed_shifts", elapsed)
}

func (s *MissedShiftService) notifyMissed(ctx context.Context, count int64) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Send(ctx, notify.Event{
		Kind:       notify.KindShiftMissed,
		Title:      "Missed shifts detected",
		OccurredAt: time.Now(),
		Fields: map[string]string{
			"count": strconv.FormatInt(count, 10),
		},
	})
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "missed shift notification failed", "error", err)
	}
}

func (s *MissedShiftService) logSweepError(err error, operation string) {
	if s.logger == nil || isContextCancellation(err) {
		return
	}
	s.logger.Error("sweep failed", "operation", operation, "error", err)
}

// waitWithJitter sleeps a random duration up to 10% of the interval so
// replicas started together do not sweep in lockstep.
func waitWithJitter(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	maxJitter := int64(interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// If crypto/rand fails, skip jitter rather than failing startup
		if logger != nil {
			logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		}
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}

func isContextCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
