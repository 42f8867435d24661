// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tawanc/pollbooth/auth"
	"github.com/tawanc/pollbooth/cliparse"
	"github.com/tawanc/pollbooth/middleware"
	"github.com/tawanc/pollbooth/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// Vote handles POST /questions/{id}/vote
//
// Preconditions, checked in order: the question exists and is published,
// voting is open, a choice was selected, and the choice belongs to the
// question. Each failure re-renders the question detail with a distinct
// error kind. The write itself is a single upsert against the
// (user_id, question_id) uniqueness constraint, so a user always ends up
// with exactly one vote row per question no matter how many submissions
// race.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	now := time.Now()

	detail, err := loadQuestionDetail(h.db, questionID, now, sess.UserID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to load question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !detail.Question.CanVote(now) {
		h.voteError(w, http.StatusForbidden, models.ErrKindVotingClosed,
			"Voting is closed for this question.", detail)
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ChoiceID == "" {
		h.voteError(w, http.StatusBadRequest, models.ErrKindNoSelection,
			"You didn't select a choice.", detail)
		return
	}

	var choiceText string
	err = h.db.QueryRow(`
		SELECT choice_text FROM choice WHERE id = $1 AND question_id = $2
	`, req.ChoiceID, questionID).Scan(&choiceText)

	if err == sql.ErrNoRows {
		h.voteError(w, http.StatusBadRequest, models.ErrKindInvalidChoice,
			"Invalid choice selected.", detail)
		return
	}
	if err != nil {
		slog.Error("failed to query choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Find-or-insert as one atomic statement. On a repeat vote the
	// existing row is repointed at the new choice.
	_, err = h.db.Exec(`
		INSERT INTO vote (id, user_id, question_id, choice_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, question_id)
		DO UPDATE SET choice_id = excluded.choice_id, updated_at = excluded.updated_at
	`, auth.NewID(), sess.UserID, questionID, req.ChoiceID, now)

	if err != nil {
		slog.Error("failed to record vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded",
		"question_id", questionID,
		"choice_id", req.ChoiceID,
		"username", sess.Username,
	)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Message:    "Your vote for " + choiceText + " has been recorded.",
		ChoiceID:   req.ChoiceID,
		ResultsURL: "/questions/" + questionID + "/results",
	})
}

func (h *VotingHandler) voteError(w http.ResponseWriter, status int, kind, message string, detail *models.QuestionDetail) {
	middleware.JSONResponse(w, status, models.VoteErrorResponse{
		Error:    kind,
		Message:  message,
		Question: detail,
	})
}
