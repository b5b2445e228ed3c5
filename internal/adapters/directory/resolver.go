package directory

// Package directory resolves an authenticated identity to its portal role by
// checking the role directories in a fixed order.

import (
	"context"
	"log/slog"
	"time"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/ports"
)

// resolveTimeout bounds the directory lookups so a slow database cannot hang
// the login flow.
const resolveTimeout = 5 * time.Second

// CaregiverDirectory is the subset of the caregiver repo the resolver needs.
type CaregiverDirectory interface {
	GetByEmail(ctx context.Context, email string) (*model.Caregiver, error)
}

// FamilyDirectory is the subset of the family member repo the resolver needs.
type FamilyDirectory interface {
	GetByAuthUserID(ctx context.Context, authUserID string) (*model.FamilyMember, error)
	GetByEmail(ctx context.Context, email string) (*model.FamilyMember, error)
	LinkedClientIDs(ctx context.Context, memberID string) ([]string, error)
}

// ResolverOptions groups dependencies for Resolver.
type ResolverOptions struct {
	AdminEmail string
	Caregivers CaregiverDirectory
	Families   FamilyDirectory
	Logger     *slog.Logger
}

// Resolver implements ports.RoleResolver. Checks run in a fixed order, admin
// first, then caregiver, then family, so an email present in more than one
// directory always resolves the same way. Resolution is idempotent: it reads
// directory state and never writes.
type Resolver struct {
	adminEmail string
	caregivers CaregiverDirectory
	families   FamilyDirectory
	log        *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		adminEmail: opts.AdminEmail,
		caregivers: opts.Caregivers,
		families:   opts.Families,
		log:        log.With("component", "role_resolver"),
	}
}

// Resolve maps an identity to a role and profile. An identity matching no
// directory resolves to the guest role rather than an error; lookups failing
// for infrastructure reasons surface the error so callers do not mint a
// guest session for a user who may have a real role.
func (r *Resolver) Resolve(ctx context.Context, identity domainauth.Identity) (ports.RoleResolution, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	// The admin match is case-sensitive equality against the configured email.
	if r.adminEmail != "" && identity.Email == r.adminEmail {
		return ports.RoleResolution{Role: domainauth.RoleAdmin}, nil
	}

	if identity.Email != "" {
		cg, err := r.caregivers.GetByEmail(ctx, identity.Email)
		switch {
		case err == nil:
			return ports.RoleResolution{
				Role:      domainauth.RoleCaregiver,
				ProfileID: cg.ID,
			}, nil
		case !apperrors.IsNotFound(err):
			return ports.RoleResolution{}, apperrors.Wrap(err, apperrors.GetCode(err), "caregiver lookup")
		}
	}

	fm, err := r.lookupFamilyMember(ctx, identity)
	if err != nil {
		return ports.RoleResolution{}, err
	}
	if fm != nil {
		clientIDs, err := r.families.LinkedClientIDs(ctx, fm.ID)
		if err != nil {
			return ports.RoleResolution{}, apperrors.Wrap(err, apperrors.GetCode(err), "linked client lookup")
		}
		return ports.RoleResolution{
			Role:      domainauth.RoleFamily,
			ProfileID: fm.ID,
			ClientIDs: clientIDs,
		}, nil
	}

	r.log.Debug("identity matched no directory", "email", identity.Email)
	return ports.RoleResolution{Role: domainauth.RoleGuest}, nil
}

// lookupFamilyMember checks the family directory by the identity provider's
// stable user id first, then by email for members whose auth_user_id has not
// been captured yet. Returns nil with no error when the identity is not a
// family member.
func (r *Resolver) lookupFamilyMember(ctx context.Context, identity domainauth.Identity) (*model.FamilyMember, error) {
	if identity.UserID != "" {
		fm, err := r.families.GetByAuthUserID(ctx, identity.UserID)
		switch {
		case err == nil:
			return fm, nil
		case !apperrors.IsNotFound(err):
			return nil, apperrors.Wrap(err, apperrors.GetCode(err), "family member lookup")
		}
	}
	if identity.Email != "" {
		fm, err := r.families.GetByEmail(ctx, identity.Email)
		switch {
		case err == nil:
			return fm, nil
		case !apperrors.IsNotFound(err):
			return nil, apperrors.Wrap(err, apperrors.GetCode(err), "family member lookup")
		}
	}
	return nil, nil
}
