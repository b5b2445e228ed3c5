package service

import (
	"context"
	"strings"

	"github.com/tarpehcare/portal/internal/core"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/observability/metrics"
	"github.com/tarpehcare/portal/internal/observability/statsd"
)

// ShiftServiceOptions groups dependencies for ShiftService.
type ShiftServiceOptions struct {
	Shifts  core.ShiftRepository
	Metrics statsd.Sink
}

// ShiftService manages shift scheduling and the check-in/check-out lifecycle.
type ShiftService struct {
	shifts  core.ShiftRepository
	metrics statsd.Sink
}

// NewShiftService constructs a new ShiftService.
func NewShiftService(opts ShiftServiceOptions) *ShiftService {
	return &ShiftService{shifts: opts.Shifts, metrics: opts.Metrics}
}

// Create schedules a shift. Admin only; enforced at the router.
func (s *ShiftService) Create(ctx context.Context, req *model.CreateShiftRequest) (*model.Shift, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.shifts.Create(ctx, req)
}

// Get fetches a single shift by id without scoping. Admin only.
func (s *ShiftService) Get(ctx context.Context, id string) (*model.Shift, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("shift id is required")
	}
	return s.shifts.GetByID(ctx, id)
}

// GetForCaregiver fetches a shift only if it is assigned to the caregiver.
// Out-of-scope shifts read the same as missing ones.
func (s *ShiftService) GetForCaregiver(ctx context.Context, id, caregiverID string) (*model.Shift, error) {
	shift, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.CaregiverID != caregiverID {
		return nil, apperrors.NotFoundf("shift %s not found", id)
	}
	return shift, nil
}

// List returns shifts matching the options, with clamped paging. Admin only.
func (s *ShiftService) List(ctx context.Context, opts model.ShiftsListOptions) ([]*model.Shift, error) {
	opts.Limit, opts.Offset = clampPaging(opts.Limit, opts.Offset)
	return s.shifts.ListWithOptions(ctx, opts)
}

// ListForCaregiver returns the caregiver's own shifts regardless of what the
// caller put in the options.
func (s *ShiftService) ListForCaregiver(ctx context.Context, caregiverID string, opts model.ShiftsListOptions) ([]*model.Shift, error) {
	if strings.TrimSpace(caregiverID) == "" {
		return nil, apperrors.Unauthorized("session has no caregiver profile")
	}
	opts.CaregiverID = &caregiverID
	opts.ClientID = nil
	opts.ClientIDs = nil
	opts.Limit, opts.Offset = clampPaging(opts.Limit, opts.Offset)
	return s.shifts.ListWithOptions(ctx, opts)
}

// ListForFamily returns shifts for the family member's linked clients only.
// No links means no shifts, never an unscoped listing.
func (s *ShiftService) ListForFamily(ctx context.Context, clientIDs []string, opts model.ShiftsListOptions) ([]*model.Shift, error) {
	if len(clientIDs) == 0 {
		return []*model.Shift{}, nil
	}
	opts.ClientIDs = clientIDs
	opts.CaregiverID = nil
	opts.ClientID = nil
	opts.Limit, opts.Offset = clampPaging(opts.Limit, opts.Offset)
	return s.shifts.ListWithOptions(ctx, opts)
}

// Update reschedules or annotates a shift. Admin only.
func (s *ShiftService) Update(ctx context.Context, id string, req model.UpdateShiftRequest) (*model.Shift, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("shift id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.shifts.Update(ctx, id, req)
}

// CheckIn transitions a scheduled shift to in_progress. Only the assigned
// caregiver may check in; the repository enforces both the assignment and
// the status transition atomically.
func (s *ShiftService) CheckIn(ctx context.Context, id, caregiverID string) (*model.Shift, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("shift id is required")
	}
	if strings.TrimSpace(caregiverID) == "" {
		return nil, apperrors.Unauthorized("session has no caregiver profile")
	}

	shift, err := s.shifts.CheckIn(ctx, id, caregiverID)
	if err != nil {
		metrics.EmitShiftTransition(s.metrics, "check_in", metrics.ResultError, 1)
		return nil, err
	}

	metrics.EmitShiftTransition(s.metrics, "check_in", metrics.ResultSuccess, 1)
	return shift, nil
}

// CheckOut transitions an in_progress shift to completed, optionally
// recording visit notes.
func (s *ShiftService) CheckOut(ctx context.Context, id, caregiverID string, notes *string) (*model.Shift, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("shift id is required")
	}
	if strings.TrimSpace(caregiverID) == "" {
		return nil, apperrors.Unauthorized("session has no caregiver profile")
	}

	shift, err := s.shifts.CheckOut(ctx, id, caregiverID, notes)
	if err != nil {
		metrics.EmitShiftTransition(s.metrics, "check_out", metrics.ResultError, 1)
		return nil, err
	}

	metrics.EmitShiftTransition(s.metrics, "check_out", metrics.ResultSuccess, 1)
	return shift, nil
}

// Delete removes a shift. Admin only.
func (s *ShiftService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Validation("shift id is required")
	}
	deleted, err := s.shifts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("shift %s not found", id)
	}
	return nil
}
