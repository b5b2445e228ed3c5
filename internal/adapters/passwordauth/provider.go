package passwordauth

// Package passwordauth implements credential sign-in against the local
// identities table using bcrypt-hashed passwords.

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
)

// IdentityRepository is the subset of the identity repo the authenticator needs.
type IdentityRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Identity, error)
}

// Config controls the password authenticator behavior.
type Config struct {
	SessionDuration time.Duration // default 8h when zero
}

// Authenticator implements ports.CredentialAuthenticator over the local
// identities table. A failed lookup and a failed password check return the
// same unauthorized error so callers cannot probe which emails exist.
type Authenticator struct {
	identities      IdentityRepository
	sessionDuration time.Duration
}

// NewAuthenticator constructs a password authenticator.
func NewAuthenticator(identities IdentityRepository, cfg Config) *Authenticator {
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Authenticator{identities: identities, sessionDuration: dur}
}

// SignIn verifies the email/password pair and returns the authenticated identity.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (domainauth.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domainauth.Identity{}, apperrors.Unauthorized("invalid email or password")
	}

	ident, err := a.identities.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domainauth.Identity{}, apperrors.Unauthorized("invalid email or password")
		}
		return domainauth.Identity{}, err
	}

	if err := Verify(password, ident.PasswordHash); err != nil {
		return domainauth.Identity{}, err
	}

	return domainauth.Identity{
		UserID:    ident.ID,
		Email:     ident.Email,
		ExpiresAt: time.Now().Add(a.sessionDuration),
	}, nil
}

// Hash creates a bcrypt hash of the provided password.
func Hash(password string) (string, error) {
	if password == "" {
		return "", apperrors.Validation("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.Validation("password is too long")
		}
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "could not hash password")
	}
	return string(hashed), nil
}

// Verify checks a plaintext password against a bcrypt hash.
func Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.Unauthorized("invalid email or password")
		}
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "could not verify password")
	}
	return nil
}
