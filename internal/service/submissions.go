package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tarpehcare/portal/internal/core"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/observability/notify"
)

// notifyTimeout bounds the best-effort notification send so a slow webhook
// never delays the public form response.
const notifyTimeout = 10 * time.Second

// SubmissionServiceOptions groups dependencies for SubmissionService.
type SubmissionServiceOptions struct {
	Intakes  core.IntakeRepository
	Bookings core.BookingRepository
	Notifier notify.Sink
	Logger   *slog.Logger
}

// SubmissionService handles the two public website forms, intake inquiries
// and booking requests, and their admin-side review lifecycle.
type SubmissionService struct {
	intakes  core.IntakeRepository
	bookings core.BookingRepository
	notifier notify.Sink
	logger   *slog.Logger
}

// NewSubmissionService constructs a new SubmissionService.
func NewSubmissionService(opts SubmissionServiceOptions) *SubmissionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionService{
		intakes:  opts.Intakes,
		bookings: opts.Bookings,
		notifier: opts.Notifier,
		logger:   logger.With("component", "submissions"),
	}
}

// SubmitIntake persists a public intake inquiry and notifies the office.
// The notification is best effort; the submission succeeds without it.
func (s *SubmissionService) SubmitIntake(ctx context.Context, req *model.CreateIntakeRequest) (*model.IntakeSubmission, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	intake, err := s.intakes.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.send(notify.Event{
		Kind:       notify.KindIntakeReceived,
		Title:      "New care inquiry",
		OccurredAt: intake.CreatedAt,
		Fields: map[string]string{
			"contact":   intake.ContactName,
			"recipient": intake.RecipientName,
		},
	})

	return intake, nil
}

// SubmitBooking persists a public booking request and notifies the office.
func (s *SubmissionService) SubmitBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	booking, err := s.bookings.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		"contact": booking.ContactName,
		"service": string(booking.Service),
	}
	if booking.PreferredStart != nil {
		fields["preferred_start"] = booking.PreferredStart.Format(time.DateOnly)
	}
	s.send(notify.Event{
		Kind:       notify.KindBookingReceived,
		Title:      "New booking request",
		OccurredAt: booking.CreatedAt,
		Fields:     fields,
	})

	return booking, nil
}

// GetIntake fetches a single intake. Admin only.
func (s *SubmissionService) GetIntake(ctx context.Context, id string) (*model.IntakeSubmission, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("intake id is required")
	}
	return s.intakes.GetByID(ctx, id)
}

// ListIntakes returns intakes matching the options. Admin only.
func (s *SubmissionService) ListIntakes(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.IntakeSubmission, error) {
	opts.Limit, opts.Offset = clampPaging(opts.Limit, opts.Offset)
	return s.intakes.ListWithOptions(ctx, opts)
}

// UpdateIntakeStatus moves an intake through the review lifecycle. Admin only.
func (s *SubmissionService) UpdateIntakeStatus(ctx context.Context, id string, status model.SubmissionStatus) (*model.IntakeSubmission, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("intake id is required")
	}
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status %q", status)
	}
	return s.intakes.UpdateStatus(ctx, id, status)
}

// GetBooking fetches a single booking request. Admin only.
func (s *SubmissionService) GetBooking(ctx context.Context, id string) (*model.BookingRequest, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("booking id is required")
	}
	return s.bookings.GetByID(ctx, id)
}

// ListBookings returns booking requests matching the options. Admin only.
func (s *SubmissionService) ListBookings(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.BookingRequest, error) {
	opts.Limit, opts.Offset = clampPaging(opts.Limit, opts.Offset)
	return s.bookings.ListWithOptions(ctx, opts)
}

// UpdateBookingStatus moves a booking request through the review lifecycle.
func (s *SubmissionService) UpdateBookingStatus(ctx context.Context, id string, status model.SubmissionStatus) (*model.BookingRequest, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("booking id is required")
	}
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status %q", status)
	}
	return s.bookings.UpdateStatus(ctx, id, status)
}

// send delivers a notification without tying its lifetime to the request.
func (s *SubmissionService) send(event notify.Event) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Send(ctx, event); err != nil {
			s.logger.Warn("notification send failed",
				"kind", string(event.Kind),
				"error", err)
		}
	}()
}
