package oidc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/tarpehcare/portal/internal/ports"
)

// discoveryDocument is the minimal OIDC discovery payload served by test servers.
type discoveryDocument struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	JwksURI               string `json:"jwks_uri"`
}

func TestNewProvider_Success(t *testing.T) {
	issuer := ""
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := discoveryDocument{
			Issuer:                issuer,
			AuthorizationEndpoint: "https://example.com/auth",
			TokenEndpoint:         "https://example.com/token",
			UserinfoEndpoint:      "https://example.com/userinfo",
			JwksURI:               "https://example.com/jwks",
		}
		_ = json.NewEncoder(w).Encode(doc)
	})
	discoveryServer := httptest.NewServer(handler)
	defer discoveryServer.Close()
	issuer = discoveryServer.URL

	config := ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/auth/callback",
		Scope:        "openid profile email",
		DiscoveryURL: discoveryServer.URL,
		LogoutURL:    "https://example.com/logout",
	}

	provider, err := NewProvider(config)
	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.Equal(t, "https://example.com/auth", provider.config.Endpoint.AuthURL)
	assert.Equal(t, "https://example.com/token", provider.config.Endpoint.TokenURL)
	assert.Equal(t, "https://example.com/logout", provider.LogoutURL())
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config ProviderConfig
		errMsg string
	}{
		{
			name: "missing client ID",
			config: ProviderConfig{
				ClientSecret: "secret",
				RedirectURL:  "http://localhost/callback",
				DiscoveryURL: "http://example.com",
			},
			errMsg: "client ID is required",
		},
		{
			name: "missing client secret",
			config: ProviderConfig{
				ClientID:     "client",
				RedirectURL:  "http://localhost/callback",
				DiscoveryURL: "http://example.com",
			},
			errMsg: "client secret is required",
		},
		{
			name:   "missing redirect URL",
			config: ProviderConfig{ClientID: "client", ClientSecret: "secret", DiscoveryURL: "http://example.com"},
			errMsg: "redirect URL is required",
		},
		{
			name: "missing discovery URL",
			config: ProviderConfig{
				ClientID:     "client",
				ClientSecret: "secret",
				RedirectURL:  "http://localhost/callback",
			},
			errMsg: "discovery URL is required",
		},
		{
			name: "invalid claim expression",
			config: ProviderConfig{
				ClientID:     "client",
				ClientSecret: "secret",
				RedirectURL:  "http://localhost/callback",
				DiscoveryURL: "http://example.com",
				Claims:       ClaimMappings{Email: "profile.["},
			},
			errMsg: "invalid claim expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProvider_Begin(t *testing.T) {
	provider := createTestProvider(t)
	ctx := context.Background()

	input := ports.BeginInput{RedirectURL: "http://localhost:8080/auth/callback"}
	authURL, state, nonce, err := provider.Begin(ctx, input)

	require.NoError(t, err)
	assert.NotEmpty(t, authURL)
	assert.NotEmpty(t, state)
	assert.NotEmpty(t, nonce)
	assert.Contains(t, authURL, "https://example.com/auth")
	assert.Contains(t, authURL, "client_id=test-client")
	assert.Contains(t, authURL, "state="+state)
	assert.Contains(t, authURL, "nonce="+nonce)
}

func TestProvider_Begin_EmptyRedirectURL(t *testing.T) {
	provider := createTestProvider(t)

	_, _, _, err := provider.Begin(context.Background(), ports.BeginInput{RedirectURL: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirect URL is required")
}

func TestProvider_Exchange_ValidationErrors(t *testing.T) {
	provider := createTestProvider(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		input  ports.ExchangeInput
		errMsg string
	}{
		{
			name:   "missing code",
			input:  ports.ExchangeInput{State: "state", Nonce: "nonce"},
			errMsg: "authorization code is required",
		},
		{
			name:   "missing state",
			input:  ports.ExchangeInput{Code: "code", Nonce: "nonce"},
			errMsg: "state is required",
		},
		{
			name:   "missing nonce",
			input:  ports.ExchangeInput{Code: "code", State: "state"},
			errMsg: "nonce is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.Exchange(ctx, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProvider_Exchange_TokenEndpointFailure(t *testing.T) {
	provider := createTestProvider(t)

	input := ports.ExchangeInput{Code: "test-code", State: "test-state", Nonce: "test-nonce"}
	_, err := provider.Exchange(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange code for token")
}

func TestGenerateRandomString(t *testing.T) {
	str1, err := generateRandomString(16)
	require.NoError(t, err)
	assert.Len(t, str1, 16)

	str2, err := generateRandomString(32)
	require.NoError(t, err)
	assert.Len(t, str2, 32)

	assert.NotEqual(t, str1, str2)

	str3, err := generateRandomString(16)
	require.NoError(t, err)
	assert.NotEqual(t, str1, str3)
}

func Test_mapClaims_Defaults(t *testing.T) {
	provider := createTestProvider(t)

	claims := map[string]any{
		"sub":         "sub-123",
		"email":       "carer@example.com",
		"given_name":  "Miriam",
		"family_name": "Doe",
	}
	f, err := provider.mapClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "sub-123", f.userID)
	assert.Equal(t, "carer@example.com", f.email)
	assert.Equal(t, "Miriam", f.firstName)
	assert.Equal(t, "Doe", f.lastName)
}

func Test_mapClaims_CustomExpressions(t *testing.T) {
	provider := createTestProviderWithClaims(t, ClaimMappings{
		UserID:    "oid",
		Email:     "contact.mail",
		FirstName: "contact.name.first",
		LastName:  "contact.name.last",
	})

	claims := map[string]any{
		"oid": "user-9",
		"contact": map[string]any{
			"mail": "fam@example.com",
			"name": map[string]any{"first": "Ada", "last": "Tarpeh"},
		},
	}
	f, err := provider.mapClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-9", f.userID)
	assert.Equal(t, "fam@example.com", f.email)
	assert.Equal(t, "Ada", f.firstName)
	assert.Equal(t, "Tarpeh", f.lastName)
}

func Test_mapClaims_MissingClaimsYieldEmpty(t *testing.T) {
	provider := createTestProvider(t)

	f, err := provider.mapClaims(map[string]any{"sub": "only-sub"})
	require.NoError(t, err)
	assert.Equal(t, "only-sub", f.userID)
	assert.Empty(t, f.email)
	assert.Empty(t, f.firstName)
	assert.Empty(t, f.lastName)
}

func TestGetIDTokenFromToken_Success(t *testing.T) {
	tok := (&oauth2.Token{}).WithExtra(map[string]any{"id_token": "abc.def.ghi"})
	idTok, err := getIDTokenFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", idTok)
}

func TestGetIDTokenFromToken_Missing(t *testing.T) {
	tok := (&oauth2.Token{}).WithExtra(map[string]any{"not_id": "x"})
	_, err := getIDTokenFromToken(tok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id_token")
}

func TestGetIDTokenFromToken_Nil(t *testing.T) {
	_, err := getIDTokenFromToken(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil token")
}

func TestProvider_ImplementsInterface(t *testing.T) {
	provider := createTestProvider(t)
	var _ ports.AuthProvider = provider
}

// createTestProvider creates a test provider with a mocked discovery endpoint.
func createTestProvider(t *testing.T) *Provider {
	t.Helper()
	return createTestProviderWithClaims(t, ClaimMappings{})
}

func createTestProviderWithClaims(t *testing.T, claims ClaimMappings) *Provider {
	t.Helper()

	issuer := ""
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := discoveryDocument{
			Issuer:                issuer,
			AuthorizationEndpoint: "https://example.com/auth",
			TokenEndpoint:         "https://example.com/token",
			UserinfoEndpoint:      "https://example.com/userinfo",
			JwksURI:               "https://example.com/jwks",
		}
		_ = json.NewEncoder(w).Encode(doc)
	})
	discoveryServer := httptest.NewServer(handler)
	t.Cleanup(discoveryServer.Close)
	issuer = discoveryServer.URL

	config := ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/auth/callback",
		Scope:        "openid profile email",
		DiscoveryURL: discoveryServer.URL,
		LogoutURL:    "https://example.com/logout",
		Claims:       claims,
	}

	provider, err := NewProvider(config)
	require.NoError(t, err)
	return provider
}
