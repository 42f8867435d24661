// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollbooth API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, bus)

# Endpoints

Health:

	GET /health

Accounts:

	POST /auth/signup - Register (auto-login)
	POST /auth/login  - Log in, returns session token
	POST /auth/logout - Log out

Browsing (public):

	GET /                        - Published question list
	GET /questions               - Published question list
	GET /questions/{id}          - Question detail with choices
	GET /questions/{id}/results  - Per-choice vote counts

Voting (requires login; unauthenticated callers are redirected to
/auth/login?next=<vote-url>):

	POST /questions/{id}/vote

Question management (requires Bearer token or session cookie):

	POST   /questions              - Create question with choices
	POST   /questions/{id}/choices - Add a choice
	DELETE /questions/{id}         - Delete question (cascades)

# Handler Initialization

The router creates handler instances with dependency injection:

	accountsHandler := handlers.NewAccountsHandler(db, cfg, bus)
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration; the
accounts handler also gets the auth event bus.
*/
package router
