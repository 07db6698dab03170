package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"codolio/internal/domain/models"
	"codolio/internal/seed"
	"codolio/internal/service"
)

// Stub services record the arguments they were called with and return
// whatever the test wires in. Handlers only translate between HTTP and the
// service layer, so that translation is all these tests exercise.

type stubTreeService struct {
	tree []models.TreeTopic
	err  error
}

func (s *stubTreeService) GetTree(ctx context.Context) ([]models.TreeTopic, error) {
	return s.tree, s.err
}

type stubTopicService struct {
	createReq  *service.CreateTopicRequest
	updateID   string
	deleteID   string
	orderedIDs []string

	topic      *models.TreeTopic
	fullTopic  *models.Topic
	createErr  error
	updateErr  error
	deleteErr  error
	reorderErr error
}

func (s *stubTopicService) CreateTopic(ctx context.Context, req *service.CreateTopicRequest) (*models.TreeTopic, error) {
	s.createReq = req
	return s.topic, s.createErr
}

func (s *stubTopicService) UpdateTopic(ctx context.Context, id string, req *service.UpdateTopicRequest) (*models.Topic, error) {
	s.updateID = id
	return s.fullTopic, s.updateErr
}

func (s *stubTopicService) DeleteTopic(ctx context.Context, id string) error {
	s.deleteID = id
	return s.deleteErr
}

func (s *stubTopicService) ReorderTopics(ctx context.Context, orderedIDs []string) error {
	s.orderedIDs = orderedIDs
	return s.reorderErr
}

type stubSubTopicService struct {
	createTopicID string
	updateID      string
	deleteTopicID string
	deleteID      string
	reorderTopic  string
	orderedIDs    []string

	subTopic     *models.TreeSubTopic
	fullSubTopic *models.SubTopic
	err          error
}

func (s *stubSubTopicService) CreateSubTopic(ctx context.Context, topicID string, req *service.CreateSubTopicRequest) (*models.TreeSubTopic, error) {
	s.createTopicID = topicID
	return s.subTopic, s.err
}

func (s *stubSubTopicService) UpdateSubTopic(ctx context.Context, subTopicID string, req *service.UpdateSubTopicRequest) (*models.SubTopic, error) {
	s.updateID = subTopicID
	return s.fullSubTopic, s.err
}

func (s *stubSubTopicService) DeleteSubTopic(ctx context.Context, topicID, subTopicID string) error {
	s.deleteTopicID = topicID
	s.deleteID = subTopicID
	return s.err
}

func (s *stubSubTopicService) ReorderSubTopics(ctx context.Context, topicID string, orderedIDs []string) error {
	s.reorderTopic = topicID
	s.orderedIDs = orderedIDs
	return s.err
}

type stubQuestionService struct {
	owner      models.Owner
	questionID string
	notes      string
	orderedIDs []string

	treeQuestion *models.TreeQuestion
	question     *models.Question
	err          error
}

func (s *stubQuestionService) CreateQuestion(ctx context.Context, owner models.Owner, req *service.CreateQuestionRequest) (*models.TreeQuestion, error) {
	s.owner = owner
	return s.treeQuestion, s.err
}

func (s *stubQuestionService) UpdateQuestion(ctx context.Context, questionID string, req *service.UpdateQuestionRequest) (*models.Question, error) {
	s.questionID = questionID
	return s.question, s.err
}

func (s *stubQuestionService) ToggleSolved(ctx context.Context, questionID string) (*models.Question, error) {
	s.questionID = questionID
	return s.question, s.err
}

func (s *stubQuestionService) ToggleStarred(ctx context.Context, questionID string) (*models.Question, error) {
	s.questionID = questionID
	return s.question, s.err
}

func (s *stubQuestionService) SetNotes(ctx context.Context, questionID, notes string) (*models.Question, error) {
	s.questionID = questionID
	s.notes = notes
	return s.question, s.err
}

func (s *stubQuestionService) DeleteQuestion(ctx context.Context, owner models.Owner, questionID string) error {
	s.owner = owner
	s.questionID = questionID
	return s.err
}

func (s *stubQuestionService) ReorderQuestions(ctx context.Context, owner models.Owner, orderedIDs []string) error {
	s.owner = owner
	s.orderedIDs = orderedIDs
	return s.err
}

type stubSystemService struct {
	resetCalled bool
	wipeCalled  bool
	sheetPath   string

	summary *seed.Summary
	stats   *models.Stats
	err     error
}

func (s *stubSystemService) ResetProgress(ctx context.Context) error {
	s.resetCalled = true
	return s.err
}

func (s *stubSystemService) FullReset(ctx context.Context, sheetPath string) (*seed.Summary, error) {
	s.sheetPath = sheetPath
	return s.summary, s.err
}

func (s *stubSystemService) Wipe(ctx context.Context) error {
	s.wipeCalled = true
	return s.err
}

func (s *stubSystemService) Stats(ctx context.Context) (*models.Stats, error) {
	return s.stats, s.err
}

type env struct {
	tree     *stubTreeService
	topics   *stubTopicService
	subs     *stubSubTopicService
	question *stubQuestionService
	system   *stubSystemService
	mux      *http.ServeMux
}

// newEnv wires stub services into the same route table the server uses.
func newEnv() *env {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := &env{
		tree:     &stubTreeService{tree: []models.TreeTopic{}},
		topics:   &stubTopicService{},
		subs:     &stubSubTopicService{},
		question: &stubQuestionService{},
		system:   &stubSystemService{},
	}

	topicHandler := NewTopicHandler(e.topics, e.tree, logger)
	subTopicHandler := NewSubTopicHandler(e.subs, logger)
	questionHandler := NewQuestionHandler(e.question, logger)
	systemHandler := NewSystemHandler(e.system, "testdata/questions.json", logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", systemHandler.HealthCheck)

	mux.HandleFunc("GET /api/topics", topicHandler.ListTopics)
	mux.HandleFunc("POST /api/topics", topicHandler.CreateTopic)
	mux.HandleFunc("PUT /api/topics/reorder", topicHandler.ReorderTopics)
	mux.HandleFunc("PUT /api/topics/{topicId}", topicHandler.UpdateTopic)
	mux.HandleFunc("DELETE /api/topics/{topicId}", topicHandler.DeleteTopic)

	mux.HandleFunc("POST /api/topics/{topicId}/subtopics", subTopicHandler.CreateSubTopic)
	mux.HandleFunc("PUT /api/topics/{topicId}/subtopics/reorder", subTopicHandler.ReorderSubTopics)
	mux.HandleFunc("PUT /api/topics/{topicId}/subtopics/{subTopicId}", subTopicHandler.UpdateSubTopic)
	mux.HandleFunc("DELETE /api/topics/{topicId}/subtopics/{subTopicId}", subTopicHandler.DeleteSubTopic)

	mux.HandleFunc("POST /api/topics/{topicId}/questions", questionHandler.CreateQuestion)
	mux.HandleFunc("PUT /api/topics/{topicId}/questions/reorder", questionHandler.ReorderQuestions)
	mux.HandleFunc("PUT /api/topics/{topicId}/questions/{questionId}", questionHandler.UpdateQuestion)
	mux.HandleFunc("DELETE /api/topics/{topicId}/questions/{questionId}", questionHandler.DeleteQuestion)
	mux.HandleFunc("PATCH /api/topics/{topicId}/questions/{questionId}/toggle", questionHandler.ToggleSolved)
	mux.HandleFunc("PATCH /api/topics/{topicId}/questions/{questionId}/star", questionHandler.ToggleStarred)
	mux.HandleFunc("PATCH /api/topics/{topicId}/questions/{questionId}/notes", questionHandler.SetNotes)

	mux.HandleFunc("POST /api/topics/{topicId}/subtopics/{subTopicId}/questions", questionHandler.CreateQuestion)
	mux.HandleFunc("PUT /api/topics/{topicId}/subtopics/{subTopicId}/questions/reorder", questionHandler.ReorderQuestions)
	mux.HandleFunc("PUT /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}", questionHandler.UpdateQuestion)
	mux.HandleFunc("DELETE /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}", questionHandler.DeleteQuestion)
	mux.HandleFunc("PATCH /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}/toggle", questionHandler.ToggleSolved)
	mux.HandleFunc("PATCH /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}/star", questionHandler.ToggleStarred)
	mux.HandleFunc("PATCH /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}/notes", questionHandler.SetNotes)

	mux.HandleFunc("GET /api/stats", systemHandler.Stats)
	mux.HandleFunc("PATCH /api/system/reset-progress", systemHandler.ResetProgress)
	mux.HandleFunc("POST /api/system/full-reset", systemHandler.FullReset)
	mux.HandleFunc("DELETE /api/reset", systemHandler.Wipe)

	e.mux = mux
	return e
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (e *env) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, env
}
