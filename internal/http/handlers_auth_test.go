package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/service"
)

func newTestAuthHandlers(svc AuthServiceInterface) *AuthHandlers {
	return &AuthHandlers{Svc: svc, CookieName: testCookieName}
}

func TestPasswordLogin_Success(t *testing.T) {
	mockSvc := &mockAuthService{}
	h := newTestAuthHandlers(mockSvc)

	body := strings.NewReader(`{"email":"carer@example.com","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	w := httptest.NewRecorder()

	h.PasswordLogin(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["authenticated"])

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "session cookie should be set")
	assert.Equal(t, "test-session-id", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Positive(t, sessionCookie.MaxAge)
}

func TestPasswordLogin_RejectedCredentialsStayInline(t *testing.T) {
	mockSvc := &mockAuthService{
		passwordLoginFunc: func(_ context.Context, _, _ string) (*service.CompleteLoginResult, error) {
			return nil, apperrors.Unauthorized("email or password is incorrect")
		},
	}
	h := newTestAuthHandlers(mockSvc)

	body := strings.NewReader(`{"email":"carer@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	w := httptest.NewRecorder()

	h.PasswordLogin(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
	assert.Empty(t, w.Header().Get("Location"), "rejected credentials must never redirect")
	assert.Empty(t, w.Result().Cookies())
}

func TestPasswordLogin_MissingFields(t *testing.T) {
	h := newTestAuthHandlers(&mockAuthService{})

	body := strings.NewReader(`{"email":"","password":""}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	w := httptest.NewRecorder()

	h.PasswordLogin(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestStatus_NoCookie(t *testing.T) {
	h := newTestAuthHandlers(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	w := httptest.NewRecorder()

	h.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["authenticated"])
}

func TestStatus_ReResolvesSession(t *testing.T) {
	verified := false
	mockSvc := &mockAuthService{
		verifySessionFunc: func(_ context.Context, sessionID string) (*domainauth.Session, error) {
			verified = true
			s := caregiverTestSession(sessionID)
			return &s, nil
		},
	}
	h := newTestAuthHandlers(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()

	h.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, verified, "status must re-verify the session against the directory")

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["authenticated"])

	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "caregiver", user["role"])
}

func TestStatus_RevokedRoleClearsCookie(t *testing.T) {
	mockSvc := &mockAuthService{
		verifySessionFunc: func(_ context.Context, _ string) (*domainauth.Session, error) {
			return nil, apperrors.Unauthorized("account no longer holds a portal role")
		},
	}
	h := newTestAuthHandlers(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()

	h.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["authenticated"])

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestLogout_InvalidatesSessionAndClearsCookie(t *testing.T) {
	mockSvc := &mockAuthService{}
	h := newTestAuthHandlers(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()

	h.Logout(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, []string{"sess-1"}, mockSvc.loggedOut)

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestLogout_AJAXReturnsJSON(t *testing.T) {
	h := newTestAuthHandlers(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()

	h.Logout(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "redirect_to")
}

func TestBeginProviderLogin_SetsOAuthCookiesAndRedirects(t *testing.T) {
	h := newTestAuthHandlers(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=/caregiver/dashboard", nil)
	w := httptest.NewRecorder()

	h.BeginProviderLogin(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "https://idp.example.com/auth")

	names := map[string]string{}
	for _, c := range w.Result().Cookies() {
		names[c.Name] = c.Value
	}
	assert.Equal(t, "test-state", names["oauth_state"])
	assert.Equal(t, "test-nonce", names["oauth_nonce"])
	assert.Equal(t, "/caregiver/dashboard", names["post_login_redirect"])
}

func TestBeginProviderLogin_RejectsAbsoluteRedirect(t *testing.T) {
	h := newTestAuthHandlers(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https://evil.example.com/", nil)
	w := httptest.NewRecorder()

	h.BeginProviderLogin(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "post_login_redirect" {
			assert.Equal(t, "/", c.Value)
		}
	}
}

func TestCallback_StateMismatch(t *testing.T) {
	h := newTestAuthHandlers(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=tampered", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "original-state"})
	w := httptest.NewRecorder()

	h.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")
}

func TestCallback_Success(t *testing.T) {
	var gotInput service.CompleteLoginInput
	mockSvc := &mockAuthService{
		completeLoginFunc: func(_ context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			gotInput = input
			return &service.CompleteLoginResult{Session: caregiverTestSession("new-session")}, nil
		},
	}
	h := newTestAuthHandlers(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=test-state", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "test-state"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "test-nonce"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/caregiver/dashboard"})
	w := httptest.NewRecorder()

	h.Callback(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/caregiver/dashboard", w.Header().Get("Location"))
	assert.Equal(t, "abc", gotInput.Code)
	assert.Equal(t, "test-nonce", gotInput.Nonce)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "new-session", sessionCookie.Value)
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/family/shifts", "/family/shifts"},
		{"https://evil.example.com/", "/"},
		{"//evil.example.com", "/"},
		{"relative-no-slash", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectPath(tt.in), "input %q", tt.in)
	}
}
