package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/observability/metrics"
	"github.com/tarpehcare/portal/internal/observability/statsd"
	"github.com/tarpehcare/portal/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser navigations vs
// API calls. Downstream guards use the context value to choose between
// redirects and JSON error responses.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isBrowser := isBrowserRequest(r)
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// isBrowserRequest determines if a request is a browser navigation based on:
// 1. Path prefix - /api/ and /auth/status are always programmatic
// 2. Accept header - browsers accept text/html on navigations.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	if strings.HasPrefix(r.URL.Path, "/static/") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for non-API routes
		return true
	}
	return strings.Contains(accept, "text/html")
}

// Guard enforces the session requirement on the protected portal areas.
// Each area gets its own denial behavior for browser navigations while API
// calls always receive 401/403 JSON.
type Guard struct {
	Svc          AuthServiceInterface
	CookieName   string
	CookieDomain string
	Metrics      statsd.Sink
	Logger       *slog.Logger
}

func (g *Guard) logger() *slog.Logger {
	if g != nil && g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// RequireArea returns a middleware admitting only sessions holding the given
// role. On success the session is stamped into the request context.
func (g *Guard) RequireArea(role domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := g.sessionFromRequest(r)
			if session == nil {
				g.denyNoSession(w, r, role)
				return
			}

			if session.Role != role {
				g.denyWrongRole(w, r, role, session)
				return
			}

			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ForwardIfLive redirects browser requests carrying a live session for the
// given role to target instead of re-showing the area's login entry point.
func (g *Guard) ForwardIfLive(role domainauth.Role, target string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := g.sessionFromRequest(r)
		if session != nil && session.Role == role {
			if IsBrowserRequest(r) {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			WriteJSON(w, http.StatusOK, map[string]string{"redirect_to": target})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionFromRequest retrieves and validates a session from the request.
// Session-store or provider failures are logged and treated as no session,
// so an unreachable backend locks the portals instead of opening them.
func (g *Guard) sessionFromRequest(r *http.Request) *domainauth.Session {
	if g.Svc == nil {
		return nil
	}

	cookie, err := r.Cookie(g.CookieName)
	if err != nil {
		return nil
	}

	session, err := g.Svc.GetSession(r.Context(), cookie.Value)
	if err != nil {
		if !service.IsSessionExpired(err) && !apperrors.IsUnauthorized(err) {
			g.logger().WarnContext(r.Context(), "session lookup failed",
				"error", err, "path", r.URL.Path)
		}
		return nil
	}

	return session
}

func (g *Guard) denyNoSession(w http.ResponseWriter, r *http.Request, role domainauth.Role) {
	if IsBrowserRequest(r) {
		redirectParam := url.QueryEscape(safeRedirectPath(r.URL.RequestURI()))
		http.Redirect(w, r, loginPathForRole(role)+"?redirect_uri="+redirectParam, http.StatusSeeOther)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}

// denyWrongRole applies the per-area outcome for an authenticated session
// holding the wrong role. The admin area reveals nothing and bounces to the
// public site. The caregiver area re-offers its login. The family area signs
// the session out entirely so the next attempt starts clean.
func (g *Guard) denyWrongRole(w http.ResponseWriter, r *http.Request, area domainauth.Role, session *domainauth.Session) {
	metrics.EmitRoleDenial(g.Metrics, string(area), string(session.Role))

	if area == domainauth.RoleFamily {
		g.signOut(w, r, session.ID)
	}

	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "insufficient_permissions",
			Err:     wrongRoleError(area),
		})
		return
	}

	switch area {
	case domainauth.RoleAdmin:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case domainauth.RoleCaregiver:
		http.Redirect(w, r, "/caregiver/login", http.StatusSeeOther)
	case domainauth.RoleFamily:
		http.Redirect(w, r, "/family/login?error=not_family_member", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (g *Guard) signOut(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := g.Svc.Logout(r.Context(), sessionID); err != nil {
		g.logger().WarnContext(r.Context(), "forced sign-out failed", "error", err)
	}
	expireCookie(w, r, g.CookieName, g.CookieDomain)
}

func wrongRoleError(area domainauth.Role) error {
	if area == domainauth.RoleFamily {
		return errors.New("This account is not registered as a family member.")
	}
	return errors.New("insufficient permissions")
}

func loginPathForRole(role domainauth.Role) string {
	switch role {
	case domainauth.RoleAdmin:
		return "/admin/login"
	case domainauth.RoleCaregiver:
		return "/caregiver/login"
	case domainauth.RoleFamily:
		return "/family/login"
	default:
		return "/"
	}
}
