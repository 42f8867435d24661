// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Authentication

Three wrappers resolve the caller's session from a Bearer token or the
session cookie:

	middleware.RequireAuth(secret, handler)   // 401 JSON when missing
	middleware.RequireLogin(secret, handler)  // 302 to /auth/login?next=...
	middleware.OptionalAuth(secret, handler)  // attach session if present

Handlers read the result from the request context:

	sess, ok := middleware.SessionFrom(r.Context())

The vote endpoint uses RequireLogin so an unauthenticated browser is sent
to the login interface with a return-to parameter; API-style management
endpoints use RequireAuth.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for the auth audit log.
*/
package middleware
