package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	PasswordLogin(ctx context.Context, email, password string) (*service.CompleteLoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	VerifySession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieName   string
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// serviceUnavailable reports whether auth is unwired (misconfigured mode)
// and answers 503 when it is.
func (h *AuthHandlers) serviceUnavailable(w http.ResponseWriter) bool {
	if h.Svc != nil {
		return false
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusServiceUnavailable,
		ErrCode: "auth_unavailable",
		Err:     errors.New("authentication is not configured"),
	})
	return true
}

// BeginProviderLogin handles the provider login initiation endpoint.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) BeginProviderLogin(w http.ResponseWriter, r *http.Request) {
	if h.serviceUnavailable(w) {
		return
	}

	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), redirectURI)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     err,
		})
		return
	}

	// Store state, nonce, and the original redirect URI in secure cookies
	h.setOAuthCookies(w, r, oauthCookieParams{State: result.State, Nonce: result.Nonce, RedirectURI: redirectURI})

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback handles the provider callback endpoint.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	if h.serviceUnavailable(w) {
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_code",
			Err:     errors.New("authorization code is required"),
		})
		return
	}
	if state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_state",
			Err:     errors.New("state parameter is required"),
		})
		return
	}

	// Verify state and read nonce
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}
	nonceCookie, err := r.Cookie("oauth_nonce")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_nonce",
			Err:     errors.New("missing nonce parameter"),
		})
		return
	}

	result, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_completion_failed",
			Err:     err,
		})
		return
	}

	// Set session cookie and clear temporary OAuth cookies
	h.setSessionCookie(w, r, result.Session)
	expireCookie(w, r, "oauth_state", h.CookieDomain)
	expireCookie(w, r, "oauth_nonce", h.CookieDomain)

	http.Redirect(w, r, h.getPostLoginRedirect(w, r), http.StatusFound)
}

// passwordLoginRequest is the POST /auth/login body.
type passwordLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordLogin handles the credential login endpoint.
// POST /auth/login. Rejected credentials always answer 401 inline so the
// login form can surface the failure without a navigation.
func (h *AuthHandlers) PasswordLogin(w http.ResponseWriter, r *http.Request) {
	if h.serviceUnavailable(w) {
		return
	}

	var req passwordLoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	result, err := h.Svc.PasswordLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "invalid_credentials",
				Err:     errors.New("email or password is incorrect"),
			})
			return
		}
		h.logger().ErrorContext(r.Context(), "password login failed", "error", err)
		WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, r, result.Session)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sessionUserPayload(result.Session),
		"expires_at":    result.Session.ExpiresAt,
	})
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(h.CookieName); err == nil && h.Svc != nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	expireCookie(w, r, h.CookieName, h.CookieDomain)

	redirectURI := r.FormValue("redirect_uri")
	if redirectURI == "" {
		redirectURI = r.URL.Query().Get("redirect_uri")
	}
	redirectURI = safeRedirectPath(redirectURI)

	isAJAX := strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
	if isAJAX {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": redirectURI,
		})
		return
	}

	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// Status returns the current authentication status, re-resolving the portal
// role so a revoked or reassigned account is caught between page loads.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(h.CookieName)
	if err != nil || h.Svc == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.VerifySession(r.Context(), sessionCookie.Value)
	if err != nil {
		// Session is invalid, expired, or no longer holds a role. Clear the
		// cookie so the browser stops presenting it.
		expireCookie(w, r, h.CookieName, h.CookieDomain)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sessionUserPayload(*session),
		"expires_at":    session.ExpiresAt,
	})
}

func sessionUserPayload(s domainauth.Session) map[string]any {
	return map[string]any{
		"id":         s.UserID,
		"first_name": s.FirstName,
		"last_name":  s.LastName,
		"email":      s.Email,
		"role":       s.Role,
	}
}

// oauthCookieParams groups values needed to set OAuth cookies (≤3 params rule).
type oauthCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

// setOAuthCookies stores OAuth state, nonce, and the post-login redirect in secure cookies.
func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	const oauthCookieTTL = 600 // 10 minutes

	writeCookie(w, r, sessionCookieParams{Name: "oauth_state", Value: p.State, Domain: h.CookieDomain, MaxAge: oauthCookieTTL})
	writeCookie(w, r, sessionCookieParams{Name: "oauth_nonce", Value: p.Nonce, Domain: h.CookieDomain, MaxAge: oauthCookieTTL})
	writeCookie(w, r, sessionCookieParams{
		Name:   "post_login_redirect",
		Value:  p.RedirectURI,
		Domain: h.CookieDomain,
		MaxAge: oauthCookieTTL,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	writeCookie(w, r, sessionCookieParams{
		Name:   h.CookieName,
		Value:  s.ID,
		Domain: h.CookieDomain,
		MaxAge: int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// getPostLoginRedirect returns the post-login redirect URL and clears the cookie.
func (h *AuthHandlers) getPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := "/"
	if redirectCookie, err := r.Cookie("post_login_redirect"); err == nil {
		redirectURI = safeRedirectPath(redirectCookie.Value)
		expireCookie(w, r, "post_login_redirect", h.CookieDomain)
	}
	return redirectURI
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
