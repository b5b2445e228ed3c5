package service

import (
	"context"
	"strings"

	"github.com/tarpehcare/portal/internal/core"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

// FamilyServiceOptions groups dependencies for FamilyService.
type FamilyServiceOptions struct {
	Members core.FamilyMemberRepository
}

// FamilyService manages the family member directory and its client links.
type FamilyService struct {
	members core.FamilyMemberRepository
}

// NewFamilyService constructs a new FamilyService.
func NewFamilyService(opts FamilyServiceOptions) *FamilyService {
	return &FamilyService{members: opts.Members}
}

// Create registers a family member. The email grants family portal access
// once the member signs in; links scope what they can see.
func (s *FamilyService) Create(ctx context.Context, req *model.CreateFamilyMemberRequest) (*model.FamilyMember, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.members.Create(ctx, req)
}

// Get fetches a single family member by id.
func (s *FamilyService) Get(ctx context.Context, id string) (*model.FamilyMember, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("family member id is required")
	}
	return s.members.GetByID(ctx, id)
}

// List returns family members with clamped paging.
func (s *FamilyService) List(ctx context.Context, limit, offset int) ([]*model.FamilyMember, error) {
	limit, offset = clampPaging(limit, offset)
	return s.members.List(ctx, limit, offset)
}

// LinkedClientIDs returns the client ids a family member may access.
func (s *FamilyService) LinkedClientIDs(ctx context.Context, id string) ([]string, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("family member id is required")
	}
	return s.members.LinkedClientIDs(ctx, id)
}

// ReplaceClientLinks replaces the member's client links wholesale. Active
// sessions pick up the new scope on their next verification.
func (s *FamilyService) ReplaceClientLinks(ctx context.Context, id string, req model.UpdateFamilyMemberLinksRequest) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Validation("family member id is required")
	}
	if err := req.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return s.members.ReplaceClientLinks(ctx, id, req)
}

// Delete removes a family member and their links.
func (s *FamilyService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Validation("family member id is required")
	}
	deleted, err := s.members.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("family member %s not found", id)
	}
	return nil
}
