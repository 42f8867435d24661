// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tawanc/pollbooth/middleware"
	"github.com/tawanc/pollbooth/models"
	"github.com/tawanc/pollbooth/testutil"
)

func TestIndexFiltersAndOrders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(db, cfg)

	now := time.Now()
	oldID := testutil.CreateTestQuestion(t, db, "Old question?", now.Add(-5*24*time.Hour), nil)
	newID := testutil.CreateTestQuestion(t, db, "New question?", now.Add(-1*time.Hour), nil)
	testutil.CreateTestQuestion(t, db, "Future question?", now.Add(5*24*time.Hour), nil)

	req := testutil.MakeRequest("GET", "/questions", nil, nil)
	w := httptest.NewRecorder()
	handler.Index(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.IndexResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Questions) != 2 {
		t.Fatalf("expected 2 published questions, got %d", len(resp.Questions))
	}
	// Newest first
	if resp.Questions[0].ID != newID || resp.Questions[1].ID != oldID {
		t.Errorf("unexpected ordering: %s, %s", resp.Questions[0].ID, resp.Questions[1].ID)
	}
	if !resp.Questions[0].CanVote {
		t.Error("open question should report can_vote=true")
	}
}

func TestIndexMarksClosedQuestions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(db, cfg)

	now := time.Now()
	ended := now.Add(-time.Hour)
	testutil.CreateTestQuestion(t, db, "Closed question?", now.Add(-48*time.Hour), &ended)

	w := httptest.NewRecorder()
	handler.Index(w, testutil.MakeRequest("GET", "/questions", nil, nil))

	var resp models.IndexResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(resp.Questions))
	}
	if resp.Questions[0].CanVote {
		t.Error("ended question should report can_vote=false but stay listed")
	}
}

func TestDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(db, cfg)

	now := time.Now()
	questionID := testutil.CreateTestQuestion(t, db, "Best language?", now.Add(-5*24*time.Hour), nil)
	choiceGo := testutil.AddTestChoice(t, db, questionID, "Go")
	testutil.AddTestChoice(t, db, questionID, "Python")

	futureID := testutil.CreateTestQuestion(t, db, "Not yet?", now.Add(5*24*time.Hour), nil)

	userID, token := testutil.CreateTestUser(t, db, cfg, "alice")
	testutil.CastTestVote(t, db, userID, questionID, choiceGo)

	wrapped := middleware.OptionalAuth(cfg.SessionSecret, handler.Detail)

	tests := []struct {
		name           string
		id             string
		token          string
		expectedStatus int
		wantPrevious   *string
	}{
		{"published question", questionID, "", http.StatusOK, nil},
		{"published question with prior vote", questionID, token, http.StatusOK, &choiceGo},
		{"future question is not found", futureID, "", http.StatusNotFound, nil},
		{"unknown id", "does-not-exist", "", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			req := testutil.MakeRequest("GET", "/questions/"+tt.id, nil, headers)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			wrapped(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.QuestionDetail
			testutil.AssertJSON(t, w, &resp)

			if resp.Question.ID != tt.id {
				t.Errorf("expected question %s, got %s", tt.id, resp.Question.ID)
			}
			if len(resp.Choices) != 2 {
				t.Errorf("expected 2 choices, got %d", len(resp.Choices))
			}
			if tt.wantPrevious == nil && resp.PreviousChoiceID != nil {
				t.Errorf("unexpected previous choice %s", *resp.PreviousChoiceID)
			}
			if tt.wantPrevious != nil {
				if resp.PreviousChoiceID == nil || *resp.PreviousChoiceID != *tt.wantPrevious {
					t.Errorf("expected previous choice %s, got %v", *tt.wantPrevious, resp.PreviousChoiceID)
				}
			}
		})
	}
}

func TestCreateQuestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(db, cfg)
	_, token := testutil.CreateTestUser(t, db, cfg, "alice")

	wrapped := middleware.RequireAuth(cfg.SessionSecret, handler.Create)

	t.Run("creates question with choices", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions", models.CreateQuestionRequest{
			QuestionText: "Tabs or spaces?",
			Choices:      []string{"Tabs", "Spaces"},
		}, map[string]string{"Authorization": "Bearer " + token})
		w := httptest.NewRecorder()

		wrapped(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.CreateQuestionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.QuestionID == "" || len(resp.ChoiceIDs) != 2 {
			t.Fatalf("unexpected response: %+v", resp)
		}

		// pub_date defaults to creation time, so the question is live
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM choice WHERE question_id = $1`, resp.QuestionID).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != 2 {
			t.Errorf("expected 2 choice rows, got %d", n)
		}
	})

	t.Run("missing question text", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions", models.CreateQuestionRequest{}, map[string]string{
			"Authorization": "Bearer " + token,
		})
		w := httptest.NewRecorder()

		wrapped(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions", models.CreateQuestionRequest{
			QuestionText: "Sneaky?",
		}, nil)
		w := httptest.NewRecorder()

		wrapped(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestAddChoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(db, cfg)
	_, token := testutil.CreateTestUser(t, db, cfg, "alice")

	questionID := testutil.CreateTestQuestion(t, db, "Best editor?", time.Now(), nil)

	wrapped := middleware.RequireAuth(cfg.SessionSecret, handler.AddChoice)

	t.Run("adds a choice", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions/"+questionID+"/choices", models.AddChoiceRequest{
			ChoiceText: "vim",
		}, map[string]string{"Authorization": "Bearer " + token})
		req.SetPathValue("id", questionID)
		w := httptest.NewRecorder()

		wrapped(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
	})

	t.Run("unknown question", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions/nope/choices", models.AddChoiceRequest{
			ChoiceText: "emacs",
		}, map[string]string{"Authorization": "Bearer " + token})
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		wrapped(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeleteQuestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(db, cfg)
	userID, token := testutil.CreateTestUser(t, db, cfg, "alice")

	questionID := testutil.CreateTestQuestion(t, db, "Doomed?", time.Now().Add(-time.Hour), nil)
	choiceID := testutil.AddTestChoice(t, db, questionID, "Yes")
	testutil.CastTestVote(t, db, userID, questionID, choiceID)

	wrapped := middleware.RequireAuth(cfg.SessionSecret, handler.Delete)

	req := testutil.MakeRequest("DELETE", "/questions/"+questionID, nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	req.SetPathValue("id", questionID)
	w := httptest.NewRecorder()

	wrapped(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Choices and votes go with the question
	var choices, votes int
	if err := db.QueryRow(`SELECT COUNT(*) FROM choice WHERE question_id = $1`, questionID).Scan(&choices); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote WHERE question_id = $1`, questionID).Scan(&votes); err != nil {
		t.Fatal(err)
	}
	if choices != 0 || votes != 0 {
		t.Errorf("expected cascade delete, got %d choices and %d votes", choices, votes)
	}

	// Deleting again is a 404
	req = testutil.MakeRequest("DELETE", "/questions/"+questionID, nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	req.SetPathValue("id", questionID)
	w = httptest.NewRecorder()

	wrapped(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
