// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events carries authentication events from the account handlers to
their observers.

The Bus is an explicit subscription interface rather than process-global
state; main wires one up and hands it to whoever needs it:

	bus := events.NewBus()
	bus.Subscribe(events.AuditLogger(slog.Default()))

	bus.Publish(events.Event{
		Username: "alice",
		ClientIP: ip,
		Outcome:  events.OutcomeLogin,
	})

Outcomes are login, logout, and login_failed. AuditLogger writes one
structured line per event ({username, ip, outcome}); failed logins are
logged at warn level.
*/
package events
