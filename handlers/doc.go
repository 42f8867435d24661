// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollbooth API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountsHandler: signup, login, logout (publishes auth events)
  - QuestionHandler: question listing, detail, and management
  - VotingHandler: vote recording
  - ResultsHandler: per-choice vote counts

Handlers are created via constructor functions that accept *sql.DB and
Config (AccountsHandler additionally takes the auth event bus):

	votingHandler := handlers.NewVotingHandler(db, cfg)

# Browsing

	GET /questions               → Index (published questions, newest first)
	GET /questions/{id}          → Detail (404 for unpublished ids)
	GET /questions/{id}/results  → Results (counted fresh from vote rows)

# Voting

	POST /questions/{id}/vote → Vote

Requires a session. Preconditions run in order — question published,
voting window open, choice selected, choice belongs to question — and
each failure re-renders the question detail with a distinct error kind
(voting_closed, no_selection, invalid_choice). The write is one
INSERT ... ON CONFLICT upsert, so a user holds at most one vote row per
question and a repeat vote repoints it.

# Question Management

	POST   /questions               → Create (question plus initial choices)
	POST   /questions/{id}/choices  → AddChoice
	DELETE /questions/{id}          → Delete (cascades to choices and votes)

# Accounts

	POST /auth/signup → Signup (validates, hashes, auto-login)
	POST /auth/login  → Login
	POST /auth/logout → Logout

Login, logout, and failed logins are published on the event bus for the
audit log.
*/
package handlers
