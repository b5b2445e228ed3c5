package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

type fakeCaregiverDir struct {
	byEmail map[string]*model.Caregiver
	err     error
}

func (f *fakeCaregiverDir) GetByEmail(_ context.Context, email string) (*model.Caregiver, error) {
	if f.err != nil {
		return nil, f.err
	}
	if cg, ok := f.byEmail[email]; ok {
		return cg, nil
	}
	return nil, apperrors.NotFound("caregiver not found")
}

type fakeFamilyDir struct {
	byAuthID map[string]*model.FamilyMember
	byEmail  map[string]*model.FamilyMember
	links    map[string][]string
	err      error
}

func (f *fakeFamilyDir) GetByAuthUserID(_ context.Context, authUserID string) (*model.FamilyMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	if fm, ok := f.byAuthID[authUserID]; ok {
		return fm, nil
	}
	return nil, apperrors.NotFound("family member not found")
}

func (f *fakeFamilyDir) GetByEmail(_ context.Context, email string) (*model.FamilyMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	if fm, ok := f.byEmail[email]; ok {
		return fm, nil
	}
	return nil, apperrors.NotFound("family member not found")
}

func (f *fakeFamilyDir) LinkedClientIDs(_ context.Context, memberID string) ([]string, error) {
	return f.links[memberID], nil
}

func newTestResolver() *Resolver {
	caregivers := &fakeCaregiverDir{byEmail: map[string]*model.Caregiver{
		"carer@example.com": {ID: "cg-1", Email: "carer@example.com"},
	}}
	families := &fakeFamilyDir{
		byAuthID: map[string]*model.FamilyMember{
			"auth-fam-1": {ID: "fm-1", AuthUserID: "auth-fam-1", Email: "fam@example.com"},
		},
		byEmail: map[string]*model.FamilyMember{
			"fam@example.com":      {ID: "fm-1", AuthUserID: "auth-fam-1", Email: "fam@example.com"},
			"fam-new@example.com":  {ID: "fm-2", AuthUserID: "", Email: "fam-new@example.com"},
			"both-roles@localhost": {ID: "fm-3", AuthUserID: "auth-fam-3", Email: "both-roles@localhost"},
		},
		links: map[string][]string{
			"fm-1": {"client-a", "client-b"},
			"fm-2": {"client-c"},
		},
	}
	return NewResolver(ResolverOptions{
		AdminEmail: "owner@example.com",
		Caregivers: caregivers,
		Families:   families,
	})
}

func TestResolver_Admin(t *testing.T) {
	r := newTestResolver()

	res, err := r.Resolve(context.Background(), domainauth.Identity{
		UserID: "auth-1", Email: "owner@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, res.Role)
	assert.Empty(t, res.ProfileID)
	assert.Empty(t, res.ClientIDs)
}

func TestResolver_AdminEmailIsCaseSensitive(t *testing.T) {
	r := newTestResolver()

	res, err := r.Resolve(context.Background(), domainauth.Identity{
		UserID: "auth-1", Email: "Owner@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleGuest, res.Role)
}

func TestResolver_Caregiver(t *testing.T) {
	r := newTestResolver()

	res, err := r.Resolve(context.Background(), domainauth.Identity{
		UserID: "auth-2", Email: "carer@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCaregiver, res.Role)
	assert.Equal(t, "cg-1", res.ProfileID)
	assert.Empty(t, res.ClientIDs)
}

func TestResolver_FamilyByAuthUserID(t *testing.T) {
	r := newTestResolver()

	res, err := r.Resolve(context.Background(), domainauth.Identity{
		UserID: "auth-fam-1", Email: "changed-mail@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleFamily, res.Role)
	assert.Equal(t, "fm-1", res.ProfileID)
	assert.Equal(t, []string{"client-a", "client-b"}, res.ClientIDs)
}

func TestResolver_FamilyByEmailFallback(t *testing.T) {
	r := newTestResolver()

	// Member registered before first sign-in has no auth_user_id yet.
	res, err := r.Resolve(context.Background(), domainauth.Identity{
		UserID: "auth-unseen", Email: "fam-new@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleFamily, res.Role)
	assert.Equal(t, "fm-2", res.ProfileID)
	assert.Equal(t, []string{"client-c"}, res.ClientIDs)
}

func TestResolver_Guest(t *testing.T) {
	r := newTestResolver()

	res, err := r.Resolve(context.Background(), domainauth.Identity{
		UserID: "auth-x", Email: "stranger@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleGuest, res.Role)
	assert.Empty(t, res.ProfileID)
	assert.Empty(t, res.ClientIDs)
}

func TestResolver_CaregiverWinsOverFamily(t *testing.T) {
	// An email present in both directories always resolves to caregiver
	// because the check order is fixed.
	caregivers := &fakeCaregiverDir{byEmail: map[string]*model.Caregiver{
		"dual@example.com": {ID: "cg-9", Email: "dual@example.com"},
	}}
	families := &fakeFamilyDir{
		byEmail: map[string]*model.FamilyMember{
			"dual@example.com": {ID: "fm-9", Email: "dual@example.com"},
		},
		links: map[string][]string{"fm-9": {"client-z"}},
	}
	r := NewResolver(ResolverOptions{
		AdminEmail: "owner@example.com",
		Caregivers: caregivers,
		Families:   families,
	})

	res, err := r.Resolve(context.Background(), domainauth.Identity{
		UserID: "auth-dual", Email: "dual@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCaregiver, res.Role)
	assert.Equal(t, "cg-9", res.ProfileID)
}

func TestResolver_AdminWinsOverCaregiver(t *testing.T) {
	caregivers := &fakeCaregiverDir{byEmail: map[string]*model.Caregiver{
		"owner@example.com": {ID: "cg-admin", Email: "owner@example.com"},
	}}
	r := NewResolver(ResolverOptions{
		AdminEmail: "owner@example.com",
		Caregivers: caregivers,
		Families:   &fakeFamilyDir{},
	})

	res, err := r.Resolve(context.Background(), domainauth.Identity{
		UserID: "auth-1", Email: "owner@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, res.Role)
}

func TestResolver_Idempotent(t *testing.T) {
	r := newTestResolver()
	ident := domainauth.Identity{UserID: "auth-fam-1", Email: "fam@example.com"}

	first, err := r.Resolve(context.Background(), ident)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), ident)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolver_DirectoryErrorSurfaces(t *testing.T) {
	r := NewResolver(ResolverOptions{
		AdminEmail: "owner@example.com",
		Caregivers: &fakeCaregiverDir{err: apperrors.Internal("db down")},
		Families:   &fakeFamilyDir{},
	})

	_, err := r.Resolve(context.Background(), domainauth.Identity{
		UserID: "auth-1", Email: "carer@example.com",
	})
	require.Error(t, err)
	assert.NotEqual(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestResolver_EmptyIdentityResolvesGuest(t *testing.T) {
	r := newTestResolver()

	res, err := r.Resolve(context.Background(), domainauth.Identity{})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleGuest, res.Role)
}
