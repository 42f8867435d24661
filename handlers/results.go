// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/tawanc/pollbooth/cliparse"
	"github.com/tawanc/pollbooth/middleware"
	"github.com/tawanc/pollbooth/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// Results handles GET /questions/{id}/results
// Counts are computed fresh from the vote table on every read; nothing is
// cached or denormalized, so a switched vote moves the count immediately.
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	var questionText string
	err := h.db.QueryRow(`
		SELECT question_text FROM question WHERE id = $1 AND pub_date <= $2
	`, questionID, time.Now()).Scan(&questionText)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT c.id, c.choice_text, COUNT(v.id)
		FROM choice c
		LEFT JOIN vote v ON v.choice_id = c.id
		WHERE c.question_id = $1
		GROUP BY c.id, c.choice_text, c.created_at
		ORDER BY c.created_at ASC, c.id ASC
	`, questionID)

	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	results := []models.ChoiceResult{}
	for rows.Next() {
		var cr models.ChoiceResult
		if err := rows.Scan(&cr.ChoiceID, &cr.ChoiceText, &cr.Votes); err != nil {
			slog.Error("failed to scan result", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		results = append(results, cr)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		QuestionID:   questionID,
		QuestionText: questionText,
		Results:      results,
	})
}
