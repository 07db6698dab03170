package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"codolio/internal/domain"
	"codolio/internal/domain/models"
	"codolio/internal/service"
)

func sampleQuestion() *models.Question {
	return &models.Question{
		ID:          "q1",
		Title:       "Two Sum",
		IsSolved:    true,
		Difficulty:  models.DifficultyEasy,
		Platform:    "leetcode",
		ProblemURL:  "https://leetcode.com/problems/two-sum",
		Resource:    "#",
		CompanyTags: []string{"Google"},
	}
}

func TestCreateQuestionOwnerFromPath(t *testing.T) {
	e := newEnv()
	tq := models.TreeQuestionFrom(sampleQuestion())
	e.question.treeQuestion = &tq

	tests := []struct {
		name string
		path string
		want models.Owner
	}{
		{
			name: "topic-direct",
			path: "/api/topics/t1/questions",
			want: models.TopicOwner("t1"),
		},
		{
			name: "sub-topic owned",
			path: "/api/topics/t1/subtopics/s1/questions",
			want: models.SubTopicOwner("t1", "s1"),
		},
		{
			name: "literal null sub-topic falls back to topic",
			path: "/api/topics/t1/subtopics/null/questions",
			want: models.TopicOwner("t1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := e.do(t, http.MethodPost, tt.path,
				service.CreateQuestionRequest{Title: "Two Sum"})
			if rec.Code != http.StatusCreated {
				t.Fatalf("status = %d, want 201", rec.Code)
			}
			if !env.Success {
				t.Fatalf("success = false, error = %q", env.Error)
			}
			if e.question.owner != tt.want {
				t.Errorf("owner = %+v, want %+v", e.question.owner, tt.want)
			}
		})
	}
}

func TestCreateQuestionWireShape(t *testing.T) {
	e := newEnv()
	tq := models.TreeQuestionFrom(sampleQuestion())
	e.question.treeQuestion = &tq

	_, env := e.do(t, http.MethodPost, "/api/topics/t1/questions",
		service.CreateQuestionRequest{Title: "Two Sum"})

	var data map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if _, ok := data["_id"]; !ok {
		t.Error("payload missing _id")
	}
	if _, ok := data["questionId"]; !ok {
		t.Error("payload missing nested questionId block")
	}

	var meta map[string]interface{}
	if err := json.Unmarshal(data["questionId"], &meta); err != nil {
		t.Fatalf("decode questionId: %v", err)
	}
	if meta["platform"] != "leetcode" || meta["difficulty"] != "Easy" {
		t.Errorf("questionId = %v", meta)
	}
}

func TestToggleSolved(t *testing.T) {
	e := newEnv()
	e.question.question = sampleQuestion()

	rec, env := e.do(t, http.MethodPatch, "/api/topics/t1/questions/q1/toggle", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if e.question.questionID != "q1" {
		t.Errorf("service saw id %q, want q1", e.question.questionID)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["_id"] != "q1" || data["isSolved"] != true {
		t.Errorf("data = %v, want {_id: q1, isSolved: true}", data)
	}
	if len(data) != 2 {
		t.Errorf("toggle payload has %d fields, want exactly _id and isSolved", len(data))
	}
}

func TestToggleStarredUnderSubTopic(t *testing.T) {
	e := newEnv()
	q := sampleQuestion()
	q.IsStarred = true
	e.question.question = q

	rec, env := e.do(t, http.MethodPatch, "/api/topics/t1/subtopics/s1/questions/q1/star", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["_id"] != "q1" || data["isStarred"] != true {
		t.Errorf("data = %v", data)
	}
}

func TestSetNotes(t *testing.T) {
	e := newEnv()
	q := sampleQuestion()
	q.Notes = "use a map"
	e.question.question = q

	rec, env := e.do(t, http.MethodPatch, "/api/topics/t1/questions/q1/notes",
		service.NotesRequest{Notes: "use a map"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if e.question.notes != "use a map" {
		t.Errorf("service saw notes %q", e.question.notes)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["notes"] != "use a map" {
		t.Errorf("data = %v", data)
	}
}

func TestDeleteQuestion(t *testing.T) {
	e := newEnv()

	rec, env := e.do(t, http.MethodDelete, "/api/topics/t1/subtopics/s1/questions/q1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Message != "Question deleted" {
		t.Errorf("message = %q", env.Message)
	}
	if e.question.owner != models.SubTopicOwner("t1", "s1") || e.question.questionID != "q1" {
		t.Errorf("service saw owner %+v id %q", e.question.owner, e.question.questionID)
	}
}

func TestReorderQuestionsNotShadowedByIDRoute(t *testing.T) {
	e := newEnv()

	rec, _ := e.do(t, http.MethodPut, "/api/topics/t1/questions/reorder",
		service.ReorderRequest{OrderedIDs: []string{"q2", "q1"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(e.question.orderedIDs) != 2 {
		t.Fatalf("reorder saw %v", e.question.orderedIDs)
	}
	if e.question.questionID != "" {
		t.Errorf("update handler was hit with id %q", e.question.questionID)
	}
}

func TestQuestionNotFound(t *testing.T) {
	e := newEnv()
	e.question.err = fmt.Errorf("question q9: %w", domain.ErrNotFound)

	rec, env := e.do(t, http.MethodPatch, "/api/topics/t1/questions/q9/toggle", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Success || env.Error == "" {
		t.Errorf("envelope = %+v", env)
	}
}
