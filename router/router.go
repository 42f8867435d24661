// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/tawanc/pollbooth/cliparse"
	"github.com/tawanc/pollbooth/events"
	"github.com/tawanc/pollbooth/handlers"
	"github.com/tawanc/pollbooth/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, bus *events.Bus) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountsHandler := handlers.NewAccountsHandler(db, cfg, bus)
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	secret := cfg.SessionSecret

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/signup", middleware.WithLogging(accountsHandler.Signup))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountsHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(middleware.OptionalAuth(secret, accountsHandler.Logout)))

	// Browsing (public; detail picks up the caller's prior vote if logged in)
	mux.HandleFunc("GET /questions", middleware.WithLogging(questionHandler.Index))
	mux.HandleFunc("GET /questions/{id}", middleware.WithLogging(middleware.OptionalAuth(secret, questionHandler.Detail)))
	mux.HandleFunc("GET /questions/{id}/results", middleware.WithLogging(resultsHandler.Results))

	// Voting (login required; browsers get bounced to login with ?next=)
	mux.HandleFunc("POST /questions/{id}/vote", middleware.WithLogging(middleware.RequireLogin(secret, votingHandler.Vote)))

	// Question management (authenticated)
	mux.HandleFunc("POST /questions", middleware.WithLogging(middleware.RequireAuth(secret, questionHandler.Create)))
	mux.HandleFunc("POST /questions/{id}/choices", middleware.WithLogging(middleware.RequireAuth(secret, questionHandler.AddChoice)))
	mux.HandleFunc("DELETE /questions/{id}", middleware.WithLogging(middleware.RequireAuth(secret, questionHandler.Delete)))

	// Root shows the published question list
	mux.HandleFunc("GET /{$}", middleware.WithLogging(questionHandler.Index))

	return mux
}
