// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollbooth API server.

Pollbooth is a small polling service: registered users browse published
questions, cast one vote per question (switchable until the question's
end date), and read per-choice results.

# Starting the Server

The server reads configuration from a .env file, environment variables,
or CLI flags:

	DATABASE_URL="file:pollbooth.db" SESSION_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3524 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - SESSION_SECRET (-session-secret): secret for session token signing

Optional settings:

  - PORT (-p): server port (default: 3524)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, questions, voting, results)
  - router: route definitions using Go 1.22+ routing
  - middleware: logging, CORS, JSON helpers, session auth
  - models: domain types and publication/eligibility policy
  - events: auth event bus feeding the audit log
  - auth: password hashing and session tokens
  - db: connection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
