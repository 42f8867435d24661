// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tawanc/pollbooth/auth"
)

// SessionCookie is the cookie fallback for callers that don't send a
// Bearer token.
const SessionCookie = "session"

type contextKey int

const sessionKey contextKey = iota

// Session identifies the authenticated caller of a request.
type Session struct {
	UserID   string
	Username string
}

// SessionFrom returns the session attached to the request context, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}

// sessionFromRequest resolves the caller's session from the Authorization
// header (Bearer) or the session cookie.
func sessionFromRequest(r *http.Request, secret string) (*Session, error) {
	raw := ""
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		raw = strings.TrimSpace(authz[7:])
	} else if c, err := r.Cookie(SessionCookie); err == nil {
		raw = c.Value
	}
	if raw == "" {
		return nil, auth.ErrInvalidToken
	}

	claims, err := auth.ParseSessionToken(raw, secret)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: claims.Subject, Username: claims.Username}, nil
}

// RequireAuth rejects unauthenticated requests with a 401 JSON error.
// Used by the question management endpoints.
func RequireAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, secret)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	}
}

// RequireLogin redirects unauthenticated requests to the login endpoint
// with a next parameter pointing back at the original URL. Used by the
// vote endpoint so a browser flow can resume after logging in.
func RequireLogin(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, secret)
		if err != nil {
			http.Redirect(w, r, "/auth/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	}
}

// OptionalAuth attaches a session to the context when a valid token is
// present and passes the request through either way.
func OptionalAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, err := sessionFromRequest(r, secret); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
		}
		next(w, r)
	}
}
