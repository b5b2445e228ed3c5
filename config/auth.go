package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModePassword checks credentials against the local identities table.
	AuthModePassword AuthMode = "password"
	// AuthModeOIDC delegates sign-in to an external OIDC identity provider.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses a fixed development identity (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, oidc, mock)", v)
	}
}

// OIDCConfig contains OIDC/OAuth2 configuration, used when Mode=oidc.
// The claim expressions are JMESPath queries evaluated against the token
// claims; they default to the standard OIDC claim names when empty.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`

	UserIDClaim    string `env:"USER_ID_CLAIM"`
	EmailClaim     string `env:"EMAIL_CLAIM"`
	FirstNameClaim string `env:"FIRST_NAME_CLAIM"`
	LastNameClaim  string `env:"LAST_NAME_CLAIM"`
}

// DevAuthConfig controls the mock authentication identity.
// Used when AUTH_MODE=mock for development and testing. Which portal the
// identity lands in depends on which directory its email matches.
type DevAuthConfig struct {
	UserID    string `env:"USER_ID"    envDefault:"dev-user"`
	Email     string `env:"EMAIL"      envDefault:"dev@example.com"`
	FirstName string `env:"FIRST_NAME" envDefault:"Dev"`
	LastName  string `env:"LAST_NAME"  envDefault:"User"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// AdminEmail is the single email address granted the admin role.
	// Matching is case-sensitive.
	AdminEmail string `env:"AUTH_ADMIN_EMAIL,required"`

	// SessionTTL bounds how long a session stays valid server-side.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"12h"`

	// CookieName is the name of the session cookie.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"portal_session"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	a.AdminEmail = strings.TrimSpace(a.AdminEmail)
	if a.SessionTTL < time.Minute {
		a.SessionTTL = time.Minute
	}
	if strings.TrimSpace(a.CookieName) == "" {
		a.CookieName = "portal_session"
	}
}
