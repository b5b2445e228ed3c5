package httpx

import (
	"net/http"
	"strings"
	"time"
)

// requestIsSecure reports whether the request arrived over TLS, directly or
// behind a terminating proxy.
func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// sessionCookieParams groups values needed to write a session-scoped cookie.
type sessionCookieParams struct {
	Name   string
	Value  string
	Domain string
	MaxAge int
}

// writeCookie sets an HttpOnly, SameSite=Lax cookie mirroring the request's
// transport security.
func writeCookie(w http.ResponseWriter, r *http.Request, p sessionCookieParams) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.Name,
		Value:    p.Value,
		Path:     "/",
		Domain:   p.Domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   p.MaxAge,
	})
}

// expireCookie clears a cookie by setting it to expire immediately.
// It mirrors the attributes used when setting cookies to maximize
// compatibility across browsers during deletion.
func expireCookie(w http.ResponseWriter, r *http.Request, name, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
