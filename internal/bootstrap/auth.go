package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/tarpehcare/portal/config"
	"github.com/tarpehcare/portal/internal/adapters/devauth"
	"github.com/tarpehcare/portal/internal/adapters/directory"
	"github.com/tarpehcare/portal/internal/adapters/oidc"
	"github.com/tarpehcare/portal/internal/adapters/passwordauth"
	redisadapter "github.com/tarpehcare/portal/internal/adapters/redis"
	"github.com/tarpehcare/portal/internal/data"
	"github.com/tarpehcare/portal/internal/observability/statsd"
	"github.com/tarpehcare/portal/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid; the
// router treats a nil auth service as every portal area being unreachable.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}
	if cfg.DB == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: database not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	// Redis session store and role resolver are shared by every mode.
	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")
	resolver := directory.NewResolver(directory.ResolverOptions{
		AdminEmail: cfg.Auth.AdminEmail,
		Caregivers: data.NewCaregiverRepo(cfg.DB),
		Families:   data.NewFamilyMemberRepo(cfg.DB),
		Logger:     cfg.Logger,
	})

	opts := service.AuthServiceOptions{
		Sessions:   sessionStore,
		Resolver:   resolver,
		SessionTTL: cfg.Auth.SessionTTL,
		Mode:       string(cfg.Auth.Mode),
		Metrics:    cfg.Metrics,
	}

	switch cfg.Auth.Mode {
	case config.AuthModePassword:
		opts.Credentials = passwordauth.NewAuthenticator(data.NewIdentityRepo(cfg.DB), passwordauth.Config{
			SessionDuration: cfg.Auth.SessionTTL,
		})
		return service.NewAuthService(opts)

	case config.AuthModeOIDC:
		prov := buildOIDCProvider(cfg)
		if prov == nil {
			return nil
		}
		opts.Provider = prov
		return service.NewAuthService(opts)

	case config.AuthModeMock:
		prov := buildDevProvider(cfg)
		if prov == nil {
			return nil
		}
		opts.Provider = prov
		return service.NewAuthService(opts)

	default:
		return nil
	}
}

func buildOIDCProvider(cfg AuthConfig) *oidc.Provider {
	// Only enable when fully configured
	oc := cfg.Auth.OIDC
	if oc.DiscoveryURL == "" || oc.ClientID == "" || oc.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOIDC selected but required config missing; auth disabled",
				"discovery_url_empty", oc.DiscoveryURL == "",
				"client_id_empty", oc.ClientID == "",
				"client_secret_empty", oc.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oc.ClientID,
		ClientSecret: oc.ClientSecret,
		RedirectURL:  oc.RedirectURL,
		Scope:        oc.Scope,
		DiscoveryURL: oc.DiscoveryURL,
		LogoutURL:    oc.LogoutURL,
		Claims: oidc.ClaimMappings{
			UserID:    oc.UserIDClaim,
			Email:     oc.EmailClaim,
			FirstName: oc.FirstNameClaim,
			LastName:  oc.LastNameClaim,
		},
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}
	return prov
}

func buildDevProvider(cfg AuthConfig) *devauth.Provider {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:    cfg.Auth.DevAuth.UserID,
		Email:     cfg.Auth.DevAuth.Email,
		FirstName: cfg.Auth.DevAuth.FirstName,
		LastName:  cfg.Auth.DevAuth.LastName,
		// session duration defaults inside provider
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		}
		return nil
	}
	return prov
}
