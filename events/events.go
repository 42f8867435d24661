// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"log/slog"
	"sync"
	"time"
)

// Outcome classifies an authentication event.
type Outcome string

const (
	OutcomeLogin       Outcome = "login"
	OutcomeLogout      Outcome = "logout"
	OutcomeLoginFailed Outcome = "login_failed"
)

// Event describes one authentication attempt.
type Event struct {
	Username string
	ClientIP string
	Outcome  Outcome
	At       time.Time
}

// Handler receives published events.
type Handler func(Event)

// Bus is an explicit subscription point for auth events. Handlers run
// synchronously in publish order.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all future events.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every subscribed handler.
func (b *Bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}

// AuditLogger returns a handler that writes one audit line per event:
// username, client IP, outcome. Failed logins log at warn level.
func AuditLogger(logger *slog.Logger) Handler {
	return func(e Event) {
		if e.Outcome == OutcomeLoginFailed {
			logger.Warn("auth event",
				"username", e.Username,
				"ip", e.ClientIP,
				"outcome", string(e.Outcome),
			)
			return
		}
		logger.Info("auth event",
			"username", e.Username,
			"ip", e.ClientIP,
			"outcome", string(e.Outcome),
		)
	}
}
