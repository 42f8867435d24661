// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tawanc/pollbooth/auth"
	"github.com/tawanc/pollbooth/cliparse"
	"github.com/tawanc/pollbooth/events"
	"github.com/tawanc/pollbooth/middleware"
	"github.com/tawanc/pollbooth/models"
)

type AccountsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	bus *events.Bus
}

func NewAccountsHandler(db *sql.DB, cfg cliparse.Config, bus *events.Bus) *AccountsHandler {
	return &AccountsHandler{db: db, cfg: cfg, bus: bus}
}

// Signup handles POST /auth/signup
// Creates the account and logs the new user straight in.
func (h *AccountsHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.Validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters and password 8-72 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	userID := auth.NewID()
	now := time.Now()

	_, err = h.db.Exec(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, req.Username, hash, now)

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := auth.NewSessionToken(userID, req.Username, h.cfg.SessionSecret, now)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	setSessionCookie(w, token, now)
	h.bus.Publish(events.Event{
		Username: req.Username,
		ClientIP: middleware.GetClientIP(r),
		Outcome:  events.OutcomeLogin,
	})

	slog.Info("account created", "user_id", userID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.SessionResponse{
		Token:    token,
		UserID:   userID,
		Username: req.Username,
	})
}

// Login handles POST /auth/login
func (h *AccountsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.Validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	var userID, hash string
	err := h.db.QueryRow(`
		SELECT id, password_hash FROM users WHERE username = $1
	`, req.Username).Scan(&userID, &hash)

	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err == sql.ErrNoRows || !auth.CheckPassword(hash, req.Password) {
		h.bus.Publish(events.Event{
			Username: req.Username,
			ClientIP: middleware.GetClientIP(r),
			Outcome:  events.OutcomeLoginFailed,
		})
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	now := time.Now()
	token, err := auth.NewSessionToken(userID, req.Username, h.cfg.SessionSecret, now)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	setSessionCookie(w, token, now)
	h.bus.Publish(events.Event{
		Username: req.Username,
		ClientIP: middleware.GetClientIP(r),
		Outcome:  events.OutcomeLogin,
	})

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Token:    token,
		UserID:   userID,
		Username: req.Username,
	})
}

// Logout handles POST /auth/logout
// Session tokens are stateless, so logout clears the cookie and records
// the event; the caller is expected to drop its copy of the token.
func (h *AccountsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFrom(r.Context()); ok {
		h.bus.Publish(events.Event{
			Username: sess.Username,
			ClientIP: middleware.GetClientIP(r),
			Outcome:  events.OutcomeLogout,
		})
	}

	clearSessionCookie(w)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}

func setSessionCookie(w http.ResponseWriter, token string, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(auth.SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// isUniqueViolation matches constraint errors from both lib/pq and
// modernc sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
