// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tawanc/pollbooth/auth"
	"github.com/tawanc/pollbooth/cliparse"
	"github.com/tawanc/pollbooth/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own database, so tests stay independent.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Named in-memory DB with shared cache so all pooled connections see
	// the same data. One connection at a time keeps sqlite writes
	// serialized under the concurrency tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", auth.NewID())
	conn, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3524,
		DatabaseURL:   "file::memory:",
		DatabaseType:  "sqlite",
		SessionSecret: "test-session-secret",
	}
}

// CreateTestUser inserts a user with the password "correct-horse-battery"
// and returns the user ID and a valid session token.
func CreateTestUser(t *testing.T, conn *sql.DB, cfg cliparse.Config, username string) (userID, token string) {
	t.Helper()

	userID = auth.NewID()
	hash, err := auth.HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, username, hash, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err = auth.NewSessionToken(userID, username, cfg.SessionSecret, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue test session token: %v", err)
	}

	return userID, token
}

// CreateTestQuestion inserts a question and returns its ID.
func CreateTestQuestion(t *testing.T, conn *sql.DB, text string, pubDate time.Time, endDate *time.Time) string {
	t.Helper()

	questionID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO question (id, question_text, pub_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, questionID, text, pubDate, endDate, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// AddTestChoice adds a choice to a question and returns the choice ID
func AddTestChoice(t *testing.T, conn *sql.DB, questionID, text string) string {
	t.Helper()

	choiceID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO choice (id, question_id, choice_text, created_at)
		VALUES ($1, $2, $3, $4)
	`, choiceID, questionID, text, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return choiceID
}

// CastTestVote writes a vote row directly, bypassing the handler.
func CastTestVote(t *testing.T, conn *sql.DB, userID, questionID, choiceID string) {
	t.Helper()

	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO vote (id, user_id, question_id, choice_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, question_id)
		DO UPDATE SET choice_id = excluded.choice_id, updated_at = excluded.updated_at
	`, auth.NewID(), userID, questionID, choiceID, now)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// CountVotes returns the number of vote rows for a choice.
func CountVotes(t *testing.T, conn *sql.DB, choiceID string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE choice_id = $1`, choiceID).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
