// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Validate checks struct tags on request types before they touch the database.
var Validate = validator.New()

// Domain types

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Question struct {
	ID           string     `json:"id"`
	QuestionText string     `json:"question_text"`
	PubDate      time.Time  `json:"pub_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsPublished reports whether the question is visible at the given time.
func (q Question) IsPublished(now time.Time) bool {
	return !now.Before(q.PubDate)
}

// CanVote reports whether voting is open at the given time.
// With an end date the voting window is the closed interval
// [PubDate, EndDate]; without one it never closes.
func (q Question) CanVote(now time.Time) bool {
	if q.EndDate != nil {
		return !now.Before(q.PubDate) && !now.After(*q.EndDate)
	}
	return !now.Before(q.PubDate)
}

// WasPublishedRecently reports whether the question was published within
// the last day. A pub date in the future yields false.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return !q.PubDate.Before(now.Add(-24*time.Hour)) && !q.PubDate.After(now)
}

type Choice struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	ChoiceText string    `json:"choice_text"`
	CreatedAt  time.Time `json:"-"`
}

type Vote struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	QuestionID string    `json:"question_id"`
	ChoiceID   string    `json:"choice_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Request types

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text" validate:"required,max=200"`
	PubDate      *time.Time `json:"pub_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Choices      []string   `json:"choices" validate:"dive,required,max=200"`
}

type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text" validate:"required,max=200"`
}

type VoteRequest struct {
	ChoiceID string `json:"choice_id"`
}

// Response types

type SessionResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type QuestionSummary struct {
	ID           string     `json:"id"`
	QuestionText string     `json:"question_text"`
	PubDate      time.Time  `json:"pub_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CanVote      bool       `json:"can_vote"`
}

type IndexResponse struct {
	Questions []QuestionSummary `json:"questions"`
}

type QuestionDetail struct {
	Question         Question `json:"question"`
	Choices          []Choice `json:"choices"`
	CanVote          bool     `json:"can_vote"`
	PreviousChoiceID *string  `json:"previous_choice_id,omitempty"`
}

type CreateQuestionResponse struct {
	QuestionID string   `json:"question_id"`
	ChoiceIDs  []string `json:"choice_ids"`
}

type AddChoiceResponse struct {
	ChoiceID string `json:"choice_id"`
}

type VoteResponse struct {
	Message    string `json:"message"`
	ChoiceID   string `json:"choice_id"`
	ResultsURL string `json:"results_url"`
}

type ChoiceResult struct {
	ChoiceID   string `json:"choice_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

type ResultsResponse struct {
	QuestionID   string         `json:"question_id"`
	QuestionText string         `json:"question_text"`
	Results      []ChoiceResult `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// VoteErrorResponse carries the question detail alongside the error so the
// caller can redisplay the voting form with a specific message.
type VoteErrorResponse struct {
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	Question *QuestionDetail `json:"question,omitempty"`
}

// Vote error kinds
const (
	ErrKindNoSelection   = "no_selection"
	ErrKindInvalidChoice = "invalid_choice"
	ErrKindVotingClosed  = "voting_closed"
)
