package oidc

// Package oidc provides the OIDC/OAuth2 AuthProvider used when the portal
// delegates sign-in to an external identity provider.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	"github.com/tarpehcare/portal/internal/ports"
)

// ClaimEvaluator abstracts JMESPath operations for testability.
type ClaimEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements ClaimEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ClaimMappings holds JMESPath expressions used to extract identity fields
// from the token claims. Empty expressions fall back to the standard OIDC
// claim names, so providers with non-standard shapes (nested profile objects,
// legacy attribute names) can be wired without code changes.
type ClaimMappings struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
}

func (m ClaimMappings) withDefaults() ClaimMappings {
	if m.UserID == "" {
		m.UserID = "sub"
	}
	if m.Email == "" {
		m.Email = "email"
	}
	if m.FirstName == "" {
		m.FirstName = "given_name"
	}
	if m.LastName == "" {
		m.LastName = "family_name"
	}
	return m
}

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	DiscoveryURL string
	LogoutURL    string
	Claims       ClaimMappings
	HTTPClient   *http.Client   // Optional, defaults to a 30s-timeout client
	Evaluator    ClaimEvaluator // Optional, defaults to go-jmespath
}

// Provider implements the AuthProvider interface using OIDC/OAuth2.
type Provider struct {
	config     *oauth2.Config
	logoutURL  string
	httpClient *http.Client
	claims     ClaimMappings
	eval       ClaimEvaluator

	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// NewProvider creates a new OIDC provider. It fetches the discovery document
// once at construction time.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if config.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	eval := config.Evaluator
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}

	claims := config.Claims.withDefaults()
	for _, expr := range []string{claims.UserID, claims.Email, claims.FirstName, claims.LastName} {
		if err := eval.Validate(expr); err != nil {
			return nil, fmt.Errorf("invalid claim expression %q: %w", expr, err)
		}
	}

	p := &Provider{
		logoutURL:  config.LogoutURL,
		httpClient: httpClient,
		claims:     claims,
		eval:       eval,
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	p.oidcProvider = op
	p.verifier = op.Verifier(&gooidc.Config{ClientID: config.ClientID})

	p.config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       strings.Fields(config.Scope),
		Endpoint:     op.Endpoint(),
	}

	return p, nil
}

// LogoutURL returns the IdP end-session URL, if one was configured.
func (p *Provider) LogoutURL() string { return p.logoutURL }

func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}

	state, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}

	nonce, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}

	// Don't override redirect_uri here; it must match the configured
	// RedirectURL exactly.
	authURL := p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_type", "code"),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)

	return authURL, state, nonce, nil
}

func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("authorization code is required")
	}
	if in.State == "" {
		return domainauth.Identity{}, errors.New("state is required")
	}
	if in.Nonce == "" {
		return domainauth.Identity{}, errors.New("nonce is required")
	}

	token, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("exchange code for token: %w", err)
	}

	fields, err := p.extractFromIDToken(ctx, token, in.Nonce)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("extract id_token: %w", err)
	}

	// Fill missing fields from UserInfo
	if fields.userID == "" || fields.email == "" {
		if fillErr := p.fillFromUserInfo(ctx, token.AccessToken, &fields); fillErr != nil {
			return domainauth.Identity{}, fmt.Errorf("get user info: %w", fillErr)
		}
	}

	expiresAt := time.Now().Add(time.Hour)
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry
	}

	return domainauth.Identity{
		UserID:    fields.userID,
		FirstName: fields.firstName,
		LastName:  fields.lastName,
		Email:     fields.email,
		ExpiresAt: expiresAt,
	}, nil
}

type identityFields struct {
	userID    string
	email     string
	firstName string
	lastName  string
}

func (p *Provider) extractFromIDToken(ctx context.Context, tok *oauth2.Token, expectedNonce string) (identityFields, error) {
	var f identityFields
	if !p.hasOpenIDScope() {
		return f, nil
	}
	rawID, err := getIDTokenFromToken(tok)
	if err != nil {
		return f, err
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return f, fmt.Errorf("verify id_token: %w", err)
	}
	var claims map[string]any
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return f, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}
	if expectedNonce != "" {
		nonce, _ := claims["nonce"].(string)
		if nonce != expectedNonce {
			return f, errors.New("invalid nonce")
		}
	}
	return p.mapClaims(claims)
}

func (p *Provider) fillFromUserInfo(ctx context.Context, accessToken string, f *identityFields) error {
	ui, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	if err != nil {
		return fmt.Errorf("fetch user info: %w", err)
	}
	var claims map[string]any
	if claimsErr := ui.Claims(&claims); claimsErr != nil {
		return fmt.Errorf("decode user info: %w", claimsErr)
	}
	filled, err := p.mapClaims(claims)
	if err != nil {
		return err
	}
	if f.userID == "" {
		f.userID = filled.userID
	}
	if f.email == "" {
		f.email = filled.email
	}
	if f.firstName == "" {
		f.firstName = filled.firstName
	}
	if f.lastName == "" {
		f.lastName = filled.lastName
	}
	return nil
}

// mapClaims evaluates the configured JMESPath expressions against a claims map.
func (p *Provider) mapClaims(claims map[string]any) (identityFields, error) {
	var f identityFields
	var err error
	if f.userID, err = p.evalString(p.claims.UserID, claims); err != nil {
		return f, err
	}
	if f.email, err = p.evalString(p.claims.Email, claims); err != nil {
		return f, err
	}
	if f.firstName, err = p.evalString(p.claims.FirstName, claims); err != nil {
		return f, err
	}
	if f.lastName, err = p.evalString(p.claims.LastName, claims); err != nil {
		return f, err
	}
	return f, nil
}

func (p *Provider) evalString(expr string, claims map[string]any) (string, error) {
	out, err := p.eval.Evaluate(expr, claims)
	if err != nil {
		return "", fmt.Errorf("evaluate claim expression %q: %w", expr, err)
	}
	s, _ := out.(string)
	return s, nil
}

// generateRandomString generates a cryptographically secure URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}

// hasOpenIDScope reports whether the configured scopes include "openid".
func (p *Provider) hasOpenIDScope() bool {
	for _, sc := range p.config.Scopes {
		if sc == "openid" {
			return true
		}
	}
	return false
}

// getIDTokenFromToken extracts the id_token from oauth2.Token.
func getIDTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	raw := tok.Extra("id_token")
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}
