package middleware

import (
	"net/http"
	"strings"

	"chmfc/internal/service"

	"github.com/pocketbase/pocketbase/core"
)

// AuthCookie carries the auth token for browser clients
const AuthCookie = "pb_auth"

const sessionKey = "chmfc.session"

// SessionResolver turns an auth token into a session, or nil
type SessionResolver interface {
	Resolve(token string) *service.Session
}

// LoadSession resolves the caller from the Authorization header or the
// pb_auth cookie. Unresolvable tokens leave the request anonymous.
func LoadSession(auth SessionResolver) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := strings.TrimSpace(e.Request.Header.Get("Authorization"))
		if token == "" {
			if cookie, err := e.Request.Cookie(AuthCookie); err == nil {
				token = cookie.Value
			}
		}

		if token != "" {
			if sess := auth.Resolve(token); sess != nil {
				e.Set(sessionKey, sess)
			}
		}
		return e.Next()
	}
}

// SessionFrom returns the session loaded for this request, or nil
func SessionFrom(e *core.RequestEvent) *service.Session {
	sess, _ := e.Get(sessionKey).(*service.Session)
	return sess
}

// RequireAuth rejects anonymous API calls with 401
func RequireAuth() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if SessionFrom(e) == nil {
			return e.JSON(http.StatusUnauthorized, map[string]string{"error": "Please sign in to continue"})
		}
		return e.Next()
	}
}

// RequireAdmin sends anonymous visitors to the login page and signed-in
// non-admins back to the home page
func RequireAdmin() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess := SessionFrom(e)
		if sess == nil {
			return e.Redirect(http.StatusSeeOther, "/login")
		}
		if !sess.IsAdmin {
			return e.Redirect(http.StatusSeeOther, "/")
		}
		return e.Next()
	}
}
