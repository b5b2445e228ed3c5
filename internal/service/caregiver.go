package service

import (
	"context"
	"strings"

	"github.com/tarpehcare/portal/internal/core"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

// CaregiverServiceOptions groups dependencies for CaregiverService.
type CaregiverServiceOptions struct {
	Caregivers core.CaregiverRepository
}

// CaregiverService manages the caregiver directory.
type CaregiverService struct {
	caregivers core.CaregiverRepository
}

// NewCaregiverService constructs a new CaregiverService.
func NewCaregiverService(opts CaregiverServiceOptions) *CaregiverService {
	return &CaregiverService{caregivers: opts.Caregivers}
}

// Create adds a caregiver to the directory. The email also grants caregiver
// portal access, so duplicates are rejected by the repository.
func (s *CaregiverService) Create(ctx context.Context, req *model.CreateCaregiverRequest) (*model.Caregiver, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.caregivers.Create(ctx, req)
}

// Get fetches a single caregiver by id.
func (s *CaregiverService) Get(ctx context.Context, id string) (*model.Caregiver, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("caregiver id is required")
	}
	return s.caregivers.GetByID(ctx, id)
}

// GetOwnProfile fetches the caregiver record tied to the session's profile id.
func (s *CaregiverService) GetOwnProfile(ctx context.Context, profileID string) (*model.Caregiver, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, apperrors.Unauthorized("session has no caregiver profile")
	}
	return s.caregivers.GetByID(ctx, profileID)
}

// List returns caregivers matching the options, with clamped paging.
func (s *CaregiverService) List(ctx context.Context, opts model.CaregiversListOptions) ([]*model.Caregiver, error) {
	opts.Limit, opts.Offset = clampPaging(opts.Limit, opts.Offset)
	return s.caregivers.ListWithOptions(ctx, opts)
}

// Update modifies an existing caregiver record.
func (s *CaregiverService) Update(ctx context.Context, id string, req model.UpdateCaregiverRequest) (*model.Caregiver, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("caregiver id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.caregivers.Update(ctx, id, req)
}

// Delete removes a caregiver from the directory. Their sessions lose the
// caregiver role the next time the session is verified.
func (s *CaregiverService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Validation("caregiver id is required")
	}
	deleted, err := s.caregivers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("caregiver %s not found", id)
	}
	return nil
}
