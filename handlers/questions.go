// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/tawanc/pollbooth/auth"
	"github.com/tawanc/pollbooth/cliparse"
	"github.com/tawanc/pollbooth/middleware"
	"github.com/tawanc/pollbooth/models"
)

type QuestionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuestionHandler(db *sql.DB, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{db: db, cfg: cfg}
}

// Index handles GET /questions
// Lists published questions, newest first. Ties on pub_date fall back to
// insertion order (created_at, then id) so the ordering is deterministic.
func (h *QuestionHandler) Index(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	rows, err := h.db.Query(`
		SELECT id, question_text, pub_date, end_date
		FROM question
		WHERE pub_date <= $1
		ORDER BY pub_date DESC, created_at ASC, id ASC
	`, now)

	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	questions := []models.QuestionSummary{}
	for rows.Next() {
		var q models.Question
		var endDate sql.NullTime
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate, &endDate); err != nil {
			slog.Error("failed to scan question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if endDate.Valid {
			q.EndDate = &endDate.Time
		}
		questions = append(questions, models.QuestionSummary{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			PubDate:      q.PubDate,
			EndDate:      q.EndDate,
			CanVote:      q.CanVote(now),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.IndexResponse{Questions: questions})
}

// Detail handles GET /questions/{id}
// Unpublished questions (future pub_date) are indistinguishable from
// absent ones. An authenticated caller also gets their current choice.
func (h *QuestionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	userID := ""
	if sess, ok := middleware.SessionFrom(r.Context()); ok {
		userID = sess.UserID
	}

	detail, err := loadQuestionDetail(h.db, questionID, time.Now(), userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to load question detail", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// Create handles POST /questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.Validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text is required (max 200 characters)")
		return
	}

	now := time.Now()
	pubDate := now
	if req.PubDate != nil {
		pubDate = *req.PubDate
	}
	// end_date before pub_date is accepted: it makes a published question
	// that never opens for voting.

	questionID := auth.NewID()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO question (id, question_text, pub_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, questionID, req.QuestionText, pubDate, req.EndDate, now)

	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	choiceIDs := []string{}
	for _, text := range req.Choices {
		choiceID := auth.NewID()
		_, err = tx.Exec(`
			INSERT INTO choice (id, question_id, choice_text, created_at)
			VALUES ($1, $2, $3, $4)
		`, choiceID, questionID, text, time.Now())

		if err != nil {
			slog.Error("failed to insert choice", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
			return
		}
		choiceIDs = append(choiceIDs, choiceID)
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question created", "question_id", questionID, "by", sess.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{
		QuestionID: questionID,
		ChoiceIDs:  choiceIDs,
	})
}

// AddChoice handles POST /questions/{id}/choices
func (h *QuestionHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.Validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice_text is required (max 200 characters)")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM question WHERE id = $1)
	`, questionID).Scan(&exists)

	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	choiceID := auth.NewID()
	_, err = h.db.Exec(`
		INSERT INTO choice (id, question_id, choice_text, created_at)
		VALUES ($1, $2, $3, $4)
	`, choiceID, questionID, req.ChoiceText, time.Now())

	if err != nil {
		slog.Error("failed to insert choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add choice")
		return
	}

	slog.Info("choice added", "question_id", questionID, "choice_id", choiceID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddChoiceResponse{ChoiceID: choiceID})
}

// Delete handles DELETE /questions/{id}
// Cascades to the question's choices and their votes.
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM question WHERE id = $1`, questionID)
	if err != nil {
		slog.Error("failed to delete question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	slog.Info("question deleted", "question_id", questionID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Question deleted",
	})
}

// loadQuestionDetail loads a published question, its choices, and the
// caller's current choice (when userID is set). Returns sql.ErrNoRows for
// absent or not-yet-published questions.
func loadQuestionDetail(db *sql.DB, questionID string, now time.Time, userID string) (*models.QuestionDetail, error) {
	var q models.Question
	var endDate sql.NullTime
	err := db.QueryRow(`
		SELECT id, question_text, pub_date, end_date, created_at
		FROM question
		WHERE id = $1 AND pub_date <= $2
	`, questionID, now).Scan(&q.ID, &q.QuestionText, &q.PubDate, &endDate, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		q.EndDate = &endDate.Time
	}

	rows, err := db.Query(`
		SELECT id, question_id, choice_text
		FROM choice
		WHERE question_id = $1
		ORDER BY created_at ASC, id ASC
	`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText); err != nil {
			return nil, err
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	detail := &models.QuestionDetail{
		Question: q,
		Choices:  choices,
		CanVote:  q.CanVote(now),
	}

	if userID != "" {
		var choiceID string
		err := db.QueryRow(`
			SELECT choice_id FROM vote WHERE user_id = $1 AND question_id = $2
		`, userID, questionID).Scan(&choiceID)
		if err == nil {
			detail.PreviousChoiceID = &choiceID
		} else if err != sql.ErrNoRows {
			return nil, err
		}
	}

	return detail, nil
}
