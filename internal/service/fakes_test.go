package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"codolio/internal/domain"
	"codolio/internal/domain/models"
	"codolio/internal/domain/repositories"
	"codolio/internal/platforms"
)

// In-memory repositories mirroring the postgres semantics: generated ids,
// not-found on single-record lookups, missing ids skipped on bulk reads and
// bulk deletes.

type fakeTopicRepo struct {
	topics map[string]*models.Topic
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{topics: map[string]*models.Topic{}}
}

func (r *fakeTopicRepo) Create(ctx context.Context, topic *models.Topic) error {
	topic.ID = uuid.NewString()
	clone := *topic
	r.topics[topic.ID] = &clone
	return nil
}

func (r *fakeTopicRepo) GetByID(ctx context.Context, id string) (*models.Topic, error) {
	topic, ok := r.topics[id]
	if !ok {
		return nil, fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	clone := *topic
	return &clone, nil
}

func (r *fakeTopicRepo) ListAll(ctx context.Context) ([]models.Topic, error) {
	out := make([]models.Topic, 0, len(r.topics))
	for _, t := range r.topics {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ord < out[j].Ord })
	return out, nil
}

func (r *fakeTopicRepo) Update(ctx context.Context, id string, update *models.TopicUpdate) (*models.Topic, error) {
	topic, ok := r.topics[id]
	if !ok {
		return nil, fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	if update.Title != nil {
		topic.Title = *update.Title
	}
	if update.Description != nil {
		topic.Description = *update.Description
	}
	if update.Status != nil {
		topic.Status = *update.Status
	}
	clone := *topic
	return &clone, nil
}

func (r *fakeTopicRepo) SetOrd(ctx context.Context, id string, ord int) error {
	topic, ok := r.topics[id]
	if !ok {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	topic.Ord = ord
	return nil
}

func (r *fakeTopicRepo) ReplaceSubTopicRefs(ctx context.Context, id string, refs []string) error {
	topic, ok := r.topics[id]
	if !ok {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	topic.SubTopicRefs = append([]string{}, refs...)
	return nil
}

func (r *fakeTopicRepo) ReplaceQuestionRefs(ctx context.Context, id string, refs []string) error {
	topic, ok := r.topics[id]
	if !ok {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	topic.QuestionRefs = append([]string{}, refs...)
	return nil
}

func (r *fakeTopicRepo) Delete(ctx context.Context, id string) error {
	delete(r.topics, id)
	return nil
}

func (r *fakeTopicRepo) Count(ctx context.Context) (int, error) {
	return len(r.topics), nil
}

func (r *fakeTopicRepo) DeleteAll(ctx context.Context) error {
	r.topics = map[string]*models.Topic{}
	return nil
}

type fakeSubTopicRepo struct {
	subTopics map[string]*models.SubTopic
}

func newFakeSubTopicRepo() *fakeSubTopicRepo {
	return &fakeSubTopicRepo{subTopics: map[string]*models.SubTopic{}}
}

func (r *fakeSubTopicRepo) Create(ctx context.Context, subTopic *models.SubTopic) error {
	subTopic.ID = uuid.NewString()
	clone := *subTopic
	r.subTopics[subTopic.ID] = &clone
	return nil
}

func (r *fakeSubTopicRepo) GetByID(ctx context.Context, id string) (*models.SubTopic, error) {
	subTopic, ok := r.subTopics[id]
	if !ok {
		return nil, fmt.Errorf("sub-topic %s: %w", id, domain.ErrNotFound)
	}
	clone := *subTopic
	return &clone, nil
}

func (r *fakeSubTopicRepo) GetByIDs(ctx context.Context, ids []string) ([]models.SubTopic, error) {
	out := []models.SubTopic{}
	for _, id := range ids {
		if subTopic, ok := r.subTopics[id]; ok {
			out = append(out, *subTopic)
		}
	}
	return out, nil
}

func (r *fakeSubTopicRepo) UpdateTitle(ctx context.Context, id, title string) (*models.SubTopic, error) {
	subTopic, ok := r.subTopics[id]
	if !ok {
		return nil, fmt.Errorf("sub-topic %s: %w", id, domain.ErrNotFound)
	}
	subTopic.Title = title
	clone := *subTopic
	return &clone, nil
}

func (r *fakeSubTopicRepo) ReplaceQuestionRefs(ctx context.Context, id string, refs []string) error {
	subTopic, ok := r.subTopics[id]
	if !ok {
		return fmt.Errorf("sub-topic %s: %w", id, domain.ErrNotFound)
	}
	subTopic.QuestionRefs = append([]string{}, refs...)
	return nil
}

func (r *fakeSubTopicRepo) Delete(ctx context.Context, id string) error {
	delete(r.subTopics, id)
	return nil
}

func (r *fakeSubTopicRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(r.subTopics, id)
	}
	return nil
}

func (r *fakeSubTopicRepo) DeleteAll(ctx context.Context) error {
	r.subTopics = map[string]*models.SubTopic{}
	return nil
}

type fakeQuestionRepo struct {
	questions map[string]*models.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[string]*models.Question{}}
}

func (r *fakeQuestionRepo) Create(ctx context.Context, question *models.Question) error {
	question.ID = uuid.NewString()
	clone := *question
	r.questions[question.ID] = &clone
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*models.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	clone := *question
	return &clone, nil
}

func (r *fakeQuestionRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	out := []models.Question{}
	for _, id := range ids {
		if question, ok := r.questions[id]; ok {
			out = append(out, *question)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(ctx context.Context, id string, update *models.QuestionUpdate) (*models.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	if update.Title != nil {
		question.Title = *update.Title
	}
	if update.Difficulty != nil {
		question.Difficulty = *update.Difficulty
	}
	if update.ProblemURL != nil {
		question.ProblemURL = *update.ProblemURL
	}
	if update.Platform != nil {
		question.Platform = *update.Platform
	}
	if update.Resource != nil {
		question.Resource = *update.Resource
	}
	if update.CompanyTags != nil {
		question.CompanyTags = append([]string{}, (*update.CompanyTags)...)
	}
	clone := *question
	return &clone, nil
}

func (r *fakeQuestionRepo) SetSolved(ctx context.Context, id string, solved bool) (*models.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	question.IsSolved = solved
	clone := *question
	return &clone, nil
}

func (r *fakeQuestionRepo) SetStarred(ctx context.Context, id string, starred bool) (*models.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	question.IsStarred = starred
	clone := *question
	return &clone, nil
}

func (r *fakeQuestionRepo) SetNotes(ctx context.Context, id, notes string) (*models.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	question.Notes = notes
	clone := *question
	return &clone, nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id string) error {
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(r.questions, id)
	}
	return nil
}

func (r *fakeQuestionRepo) ClearAllSolved(ctx context.Context) error {
	for _, question := range r.questions {
		question.IsSolved = false
	}
	return nil
}

func (r *fakeQuestionRepo) DeleteAll(ctx context.Context) error {
	r.questions = map[string]*models.Question{}
	return nil
}

// fakeTxManager runs the function directly; rollback behavior is the
// postgres layer's concern.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry(t interface{ Fatalf(string, ...interface{}) }) *platforms.Registry {
	registry, err := platforms.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return registry
}

// fixture wires every service against shared fakes.
type fixture struct {
	topicRepo    *fakeTopicRepo
	subTopicRepo *fakeSubTopicRepo
	questionRepo *fakeQuestionRepo
	topics       TopicService
	subTopics    SubTopicService
	questions    QuestionService
	tree         TreeService
}

func newFixture(t interface{ Fatalf(string, ...interface{}) }) *fixture {
	topicRepo := newFakeTopicRepo()
	subTopicRepo := newFakeSubTopicRepo()
	questionRepo := newFakeQuestionRepo()
	tx := fakeTxManager{}
	logger := testLogger()
	registry := testRegistry(t)

	return &fixture{
		topicRepo:    topicRepo,
		subTopicRepo: subTopicRepo,
		questionRepo: questionRepo,
		topics:       NewTopicService(topicRepo, subTopicRepo, questionRepo, tx, logger),
		subTopics:    NewSubTopicService(topicRepo, subTopicRepo, questionRepo, tx, logger),
		questions:    NewQuestionService(topicRepo, subTopicRepo, questionRepo, tx, registry, logger),
		tree:         NewTreeService(topicRepo, subTopicRepo, questionRepo, logger),
	}
}
