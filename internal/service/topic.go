package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"codolio/internal/domain"
	"codolio/internal/domain/models"
	"codolio/internal/domain/repositories"
)

// CreateTopicRequest carries the fields for a new topic. An omitted title
// falls back to a default rather than failing: the web client validates
// before sending and the server mirrors the original behavior.
type CreateTopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks field limits.
func (r *CreateTopicRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(0, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// UpdateTopicRequest carries a partial topic update.
type UpdateTopicRequest struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Status      *models.TopicStatus `json:"status,omitempty"`
}

// Validate checks field limits and the status enumeration.
func (r *UpdateTopicRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Status, validation.In(
			models.TopicStatusPending,
			models.TopicStatusInProgress,
			models.TopicStatusCompleted,
		)),
	)
}

// ReorderRequest carries the replacement ordering for a reference list.
type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}

// Validate requires at least one id.
func (r *ReorderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OrderedIDs, validation.Required),
	)
}

// TopicService owns topic lifecycle: create, edit, cascade delete, reorder.
type TopicService interface {
	CreateTopic(ctx context.Context, req *CreateTopicRequest) (*models.TreeTopic, error)
	UpdateTopic(ctx context.Context, id string, req *UpdateTopicRequest) (*models.Topic, error)
	DeleteTopic(ctx context.Context, id string) error
	ReorderTopics(ctx context.Context, orderedIDs []string) error
}

type topicService struct {
	topicRepo    repositories.TopicRepository
	subTopicRepo repositories.SubTopicRepository
	questionRepo repositories.QuestionRepository
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewTopicService creates a new topic service
func NewTopicService(
	topicRepo repositories.TopicRepository,
	subTopicRepo repositories.SubTopicRepository,
	questionRepo repositories.QuestionRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) TopicService {
	return &topicService{
		topicRepo:    topicRepo,
		subTopicRepo: subTopicRepo,
		questionRepo: questionRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateTopic appends a topic at the end of the global order.
func (s *topicService) CreateTopic(ctx context.Context, req *CreateTopicRequest) (*models.TreeTopic, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	title := req.Title
	if title == "" {
		title = "New Topic"
	}

	count, err := s.topicRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	topic := &models.Topic{
		Title:        title,
		Description:  req.Description,
		Status:       models.TopicStatusPending,
		Ord:          count,
		SubTopicRefs: []string{},
		QuestionRefs: []string{},
	}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}

	s.logger.Info("topic created", "id", topic.ID, "title", topic.Title, "ord", topic.Ord)

	return &models.TreeTopic{
		ID:          topic.ID,
		Title:       topic.Title,
		Description: topic.Description,
		Status:      topic.Status,
		SubTopics:   []models.TreeSubTopic{},
		Questions:   []models.TreeQuestion{},
	}, nil
}

// UpdateTopic applies a partial update; absent fields are retained.
func (s *topicService) UpdateTopic(ctx context.Context, id string, req *UpdateTopicRequest) (*models.Topic, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	topic, err := s.topicRepo.Update(ctx, id, &models.TopicUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return nil, err
	}

	return topic, nil
}

// DeleteTopic removes the topic and everything it owns, leaf to root:
// questions first, then sub-topics, then the topic record. The whole
// sequence runs in one transaction; ids that are already gone are treated
// as done, so a retried partial delete converges.
func (s *topicService) DeleteTopic(ctx context.Context, id string) error {
	topic, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	questionIDs := append([]string{}, topic.QuestionRefs...)
	subTopics, err := s.subTopicRepo.GetByIDs(ctx, topic.SubTopicRefs)
	if err != nil {
		return err
	}
	for _, st := range subTopics {
		questionIDs = append(questionIDs, st.QuestionRefs...)
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.questionRepo.DeleteByIDs(txCtx, questionIDs); err != nil {
			return err
		}
		if err := s.subTopicRepo.DeleteByIDs(txCtx, topic.SubTopicRefs); err != nil {
			return err
		}
		return s.topicRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("topic deleted",
		"id", id,
		"questions", len(questionIDs),
		"sub_topics", len(topic.SubTopicRefs),
	)
	return nil
}

// ReorderTopics overwrites the global topic order. The submitted list must
// be a permutation of every stored topic id.
func (s *topicService) ReorderTopics(ctx context.Context, orderedIDs []string) error {
	topics, err := s.topicRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	current := make([]string, len(topics))
	for i, t := range topics {
		current[i] = t.ID
	}
	if err := validatePermutation(current, orderedIDs); err != nil {
		return err
	}

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for index, topicID := range orderedIDs {
			if err := s.topicRepo.SetOrd(txCtx, topicID, index); err != nil {
				return err
			}
		}
		return nil
	})
}
