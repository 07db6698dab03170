package service

import (
	"context"
	"log/slog"

	"codolio/internal/domain/models"
	"codolio/internal/domain/repositories"
)

// TreeService assembles the full topic tree in wire shape.
type TreeService interface {
	GetTree(ctx context.Context) ([]models.TreeTopic, error)
}

type treeService struct {
	topicRepo    repositories.TopicRepository
	subTopicRepo repositories.SubTopicRepository
	questionRepo repositories.QuestionRepository
	logger       *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	topicRepo repositories.TopicRepository,
	subTopicRepo repositories.SubTopicRepository,
	questionRepo repositories.QuestionRepository,
	logger *slog.Logger,
) TreeService {
	return &treeService{
		topicRepo:    topicRepo,
		subTopicRepo: subTopicRepo,
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// GetTree loads every record in three bulk reads and resolves the reference
// lists into nested wire shapes. List order at every level follows the
// stored reference arrays (topics themselves by ordinal); references whose
// record is missing are skipped rather than failing the whole read.
func (s *treeService) GetTree(ctx context.Context) ([]models.TreeTopic, error) {
	topics, err := s.topicRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	subTopicIDs := []string{}
	questionIDs := []string{}
	for _, t := range topics {
		subTopicIDs = append(subTopicIDs, t.SubTopicRefs...)
		questionIDs = append(questionIDs, t.QuestionRefs...)
	}

	subTopics, err := s.subTopicRepo.GetByIDs(ctx, subTopicIDs)
	if err != nil {
		return nil, err
	}
	subTopicsByID := make(map[string]*models.SubTopic, len(subTopics))
	for i := range subTopics {
		subTopicsByID[subTopics[i].ID] = &subTopics[i]
		questionIDs = append(questionIDs, subTopics[i].QuestionRefs...)
	}

	questions, err := s.questionRepo.GetByIDs(ctx, questionIDs)
	if err != nil {
		return nil, err
	}
	questionsByID := make(map[string]*models.Question, len(questions))
	for i := range questions {
		questionsByID[questions[i].ID] = &questions[i]
	}

	resolveQuestions := func(refs []string) []models.TreeQuestion {
		out := make([]models.TreeQuestion, 0, len(refs))
		for _, ref := range refs {
			q, ok := questionsByID[ref]
			if !ok {
				s.logger.Warn("dangling question reference", "question_id", ref)
				continue
			}
			out = append(out, models.TreeQuestionFrom(q))
		}
		return out
	}

	tree := make([]models.TreeTopic, 0, len(topics))
	for _, t := range topics {
		node := models.TreeTopic{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			SubTopics:   make([]models.TreeSubTopic, 0, len(t.SubTopicRefs)),
			Questions:   resolveQuestions(t.QuestionRefs),
		}
		for _, ref := range t.SubTopicRefs {
			st, ok := subTopicsByID[ref]
			if !ok {
				s.logger.Warn("dangling sub-topic reference", "sub_topic_id", ref, "topic_id", t.ID)
				continue
			}
			node.SubTopics = append(node.SubTopics, models.TreeSubTopic{
				ID:        st.ID,
				Title:     st.Title,
				Questions: resolveQuestions(st.QuestionRefs),
			})
		}
		tree = append(tree, node)
	}

	return tree, nil
}
