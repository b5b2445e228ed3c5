package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/observability/metrics"
	"github.com/tarpehcare/portal/internal/observability/statsd"
	"github.com/tarpehcare/portal/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider    ports.AuthProvider          // required for oidc and mock modes
	Credentials ports.CredentialAuthenticator // required for password mode
	Sessions    ports.SessionStore
	Resolver    ports.RoleResolver
	SessionTTL  time.Duration
	Mode        string // password, oidc, mock; used for metric tagging
	Metrics     statsd.Sink
}

// AuthService orchestrates sign-in flows: it authenticates through the
// configured provider, resolves the portal role, and stamps the resolution
// into a persisted session.
type AuthService struct {
	provider    ports.AuthProvider
	credentials ports.CredentialAuthenticator
	sessions    ports.SessionStore
	resolver    ports.RoleResolver
	sessionTTL  time.Duration
	mode        string
	metrics     statsd.Sink
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{
		provider:    opts.Provider,
		credentials: opts.Credentials,
		sessions:    opts.Sessions,
		resolver:    opts.Resolver,
		sessionTTL:  ttl,
		mode:        opts.Mode,
		metrics:     opts.Metrics,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates a provider authentication flow and returns the
// provider auth URL with state and nonce. Not used in password mode.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, apperrors.Validation("redirect URL is required")
	}
	if s.provider == nil {
		return nil, apperrors.Validation("provider login is not enabled")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a provider login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin completes a provider authentication flow by exchanging the
// code for an identity, resolving the portal role, and persisting a session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, apperrors.Validation("authorization code is required")
	}
	if input.State == "" {
		return nil, apperrors.Validation("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, apperrors.Validation("nonce parameter is required")
	}
	if s.provider == nil {
		return nil, apperrors.Validation("provider login is not enabled")
	}

	start := time.Now()
	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		s.emitLogin("", metrics.ResultError, time.Since(start), err)
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return s.establishSession(ctx, identity, start)
}

// PasswordLogin authenticates an email/password pair and persists a session.
func (s *AuthService) PasswordLogin(ctx context.Context, email, password string) (*CompleteLoginResult, error) {
	if s.credentials == nil {
		return nil, apperrors.Validation("password login is not enabled")
	}

	start := time.Now()
	identity, err := s.credentials.SignIn(ctx, email, password)
	if err != nil {
		result := metrics.ResultError
		if apperrors.IsUnauthorized(err) {
			result = metrics.ResultDenied
		}
		s.emitLogin("", result, time.Since(start), err)
		return nil, err
	}

	return s.establishSession(ctx, identity, start)
}

// establishSession resolves the identity's role and stamps it, together with
// the profile id and any linked client ids, into a new session.
func (s *AuthService) establishSession(
	ctx context.Context,
	identity domainauth.Identity,
	start time.Time,
) (*CompleteLoginResult, error) {
	resolution, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		s.emitLogin("", metrics.ResultError, time.Since(start), err)
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    identity.UserID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Role:      resolution.Role,
		ProfileID: resolution.ProfileID,
		ClientIDs: resolution.ClientIDs,
		ExpiresAt: s.sessionExpiry(identity),
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		s.emitLogin(string(session.Role), metrics.ResultError, time.Since(start), saveErr)
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	s.emitLogin(string(session.Role), metrics.ResultSuccess, time.Since(start), nil)
	return &CompleteLoginResult{Session: session}, nil
}

// sessionExpiry caps the session lifetime at the configured TTL even when the
// provider hands back a longer-lived authentication.
func (s *AuthService) sessionExpiry(identity domainauth.Identity) time.Time {
	capped := time.Now().Add(s.sessionTTL)
	if identity.ExpiresAt.IsZero() || identity.ExpiresAt.After(capped) {
		return capped
	}
	return identity.ExpiresAt
}

// GetSession retrieves a session by ID, cleaning up expired sessions.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthorized("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// VerifySession re-resolves the session's role against the directories and
// re-stamps the session when the resolution changed, so directory edits
// (a removed caregiver, a re-linked family member) take effect without
// waiting for the session to expire. A session that no longer resolves to
// any role is deleted.
func (s *AuthService) VerifySession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resolution, err := s.resolver.Resolve(ctx, domainauth.Identity{
		UserID:    session.UserID,
		FirstName: session.FirstName,
		LastName:  session.LastName,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("re-resolve role: %w", err)
	}

	if resolution.Role == domainauth.RoleGuest {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, apperrors.Unauthorized("account no longer holds a portal role")
	}

	if session.Role != resolution.Role ||
		session.ProfileID != resolution.ProfileID ||
		!equalStringSlices(session.ClientIDs, resolution.ClientIDs) {
		session.Role = resolution.Role
		session.ProfileID = resolution.ProfileID
		session.ClientIDs = resolution.ClientIDs
		if saveErr := s.sessions.Save(ctx, *session); saveErr != nil {
			return nil, fmt.Errorf("save re-stamped session: %w", saveErr)
		}
	}

	return session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to log out
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// SessionTTL reports the configured session lifetime, used for cookie Max-Age.
func (s *AuthService) SessionTTL() time.Duration { return s.sessionTTL }

func (s *AuthService) emitLogin(role, result string, d time.Duration, err error) {
	metrics.EmitLogin(s.metrics, metrics.LoginMetric{
		Mode:     s.mode,
		Role:     role,
		Result:   result,
		Duration: d,
		Err:      err,
	})
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsSessionExpired reports whether the error indicates an expired session.
func IsSessionExpired(err error) bool {
	return errors.Is(err, errSessionExpired)
}
