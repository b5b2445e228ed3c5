package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// CredentialAuthenticator verifies an email/password pair and returns the
// authenticated identity. Used by the password auth mode; OIDC deployments
// go through AuthProvider instead.
type CredentialAuthenticator interface {
	SignIn(ctx context.Context, email, password string) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleResolution is the outcome of resolving an identity against the
// staff and family directories.
type RoleResolution struct {
	Role      domainauth.Role
	ProfileID string   // caregiver or family member record id; empty for admin
	ClientIDs []string // linked clients; family role only
}

// RoleResolver decides which portal role an authenticated identity holds.
// Resolution is deterministic: admin, then caregiver, then family; an
// identity matching none of the directories resolves to the guest role.
type RoleResolver interface {
	Resolve(ctx context.Context, identity domainauth.Identity) (RoleResolution, error)
}
