// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the API.

# Domain Types

  - User: registered account (password hash never serialized)
  - Question: poll prompt with a publish window [PubDate, EndDate]
  - Choice: one selectable option under a Question
  - Vote: a user's current selection for a Question (one row per
    user/question pair, enforced by the storage layer)

# Publication Policy

Question carries the visibility and eligibility rules:

	q.IsPublished(now)          // now >= PubDate
	q.CanVote(now)              // inside [PubDate, EndDate], closed interval
	q.WasPublishedRecently(now) // within the last 24h, never for future dates

All three take the current time as an argument so they stay deterministic
under test.

# Request Validation

Request types carry validate struct tags, checked with
go-playground/validator via the package-level Validate instance:

	if err := models.Validate.Struct(req); err != nil { ... }

# Vote Errors

Vote failures are distinguished by kind (no_selection, invalid_choice,
voting_closed) and re-render the question detail in the response body.
*/
package models
