package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	"github.com/tarpehcare/portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider            = (*MockAuthProvider)(nil)
	_ ports.CredentialAuthenticator = (*MockCredentialAuthenticator)(nil)
	_ ports.SessionStore            = (*MemorySessionStore)(nil)
	_ ports.RoleResolver            = (*StaticRoleResolver)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: domainauth.Identity{
			UserID:    "mock-user-1",
			FirstName: "Mock",
			LastName:  "User",
			Email:     "mock.user@example.com",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}

	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", noncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	// Return a copy of the default user with a fresh expiration time
	user := m.DefaultUser
	if user.UserID == "" {
		user = domainauth.Identity{
			UserID:    "mock-user-1",
			FirstName: "Mock",
			LastName:  "User",
			Email:     "mock.user@example.com",
		}
	}
	user.ExpiresAt = time.Now().Add(time.Hour)

	return user, nil
}

// MockCredentialAuthenticator simulates the password sign-in path.
type MockCredentialAuthenticator struct {
	SignInFunc func(ctx context.Context, email, password string) (domainauth.Identity, error)

	// Accepted credentials when SignInFunc is nil
	Email    string
	Password string
	Identity domainauth.Identity
}

func (m *MockCredentialAuthenticator) SignIn(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	if email != m.Email || password != m.Password {
		return domainauth.Identity{}, errors.New("invalid email or password")
	}
	ident := m.Identity
	if ident.ExpiresAt.IsZero() {
		ident.ExpiresAt = time.Now().Add(time.Hour)
	}
	return ident, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// StaticRoleResolver resolves roles from fixed email sets, mirroring the
// admin-then-caregiver-then-family precedence of the real resolver.
type StaticRoleResolver struct {
	AdminEmail      string
	CaregiverEmails map[string]string   // email -> caregiver profile id
	FamilyEmails    map[string]string   // email -> family member profile id
	FamilyClients   map[string][]string // family member profile id -> linked client ids
	Err             error
}

func (m StaticRoleResolver) Resolve(_ context.Context, identity domainauth.Identity) (ports.RoleResolution, error) {
	if m.Err != nil {
		return ports.RoleResolution{}, m.Err
	}
	if m.AdminEmail != "" && identity.Email == m.AdminEmail {
		return ports.RoleResolution{Role: domainauth.RoleAdmin}, nil
	}
	if id, ok := m.CaregiverEmails[identity.Email]; ok {
		return ports.RoleResolution{Role: domainauth.RoleCaregiver, ProfileID: id}, nil
	}
	if id, ok := m.FamilyEmails[identity.Email]; ok {
		return ports.RoleResolution{
			Role:      domainauth.RoleFamily,
			ProfileID: id,
			ClientIDs: m.FamilyClients[id],
		}, nil
	}
	return ports.RoleResolution{Role: domainauth.RoleGuest}, nil
}
