// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Opening a Connection

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "postgres" (lib/pq) and "sqlite" (modernc.org/sqlite,
CGo-free). For sqlite the foreign_keys pragma is appended to the DSN so
cascading deletes work.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: registered accounts
  - question: poll prompts with publish window
  - choice: options per question
  - vote: one current vote per user per question

# Relationships

	question 1──* choice
	choice   1──* vote
	users    1──* vote

All foreign keys use ON DELETE CASCADE. The vote table has a UNIQUE
(user_id, question_id) constraint; vote recording upserts against it, so
concurrent duplicate submissions can never persist two rows. Choice vote
counts are derived with COUNT(*) on read, never stored.
*/
package db
