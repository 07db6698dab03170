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

// CreateSubTopicRequest carries the title for a new sub-topic.
type CreateSubTopicRequest struct {
	Title string `json:"title"`
}

// Validate checks field limits.
func (r *CreateSubTopicRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(0, 200)),
	)
}

// UpdateSubTopicRequest renames a sub-topic.
type UpdateSubTopicRequest struct {
	Title string `json:"title"`
}

// Validate requires a non-empty replacement title.
func (r *UpdateSubTopicRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
	)
}

// SubTopicService owns sub-topic lifecycle under a parent topic.
type SubTopicService interface {
	CreateSubTopic(ctx context.Context, topicID string, req *CreateSubTopicRequest) (*models.TreeSubTopic, error)
	UpdateSubTopic(ctx context.Context, subTopicID string, req *UpdateSubTopicRequest) (*models.SubTopic, error)
	DeleteSubTopic(ctx context.Context, topicID, subTopicID string) error
	ReorderSubTopics(ctx context.Context, topicID string, orderedIDs []string) error
}

type subTopicService struct {
	topicRepo    repositories.TopicRepository
	subTopicRepo repositories.SubTopicRepository
	questionRepo repositories.QuestionRepository
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewSubTopicService creates a new sub-topic service
func NewSubTopicService(
	topicRepo repositories.TopicRepository,
	subTopicRepo repositories.SubTopicRepository,
	questionRepo repositories.QuestionRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) SubTopicService {
	return &subTopicService{
		topicRepo:    topicRepo,
		subTopicRepo: subTopicRepo,
		questionRepo: questionRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateSubTopic creates the record and appends its id to the parent
// topic's sub-topic list.
func (s *subTopicService) CreateSubTopic(ctx context.Context, topicID string, req *CreateSubTopicRequest) (*models.TreeSubTopic, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = "New Sub-Topic"
	}

	subTopic := &models.SubTopic{
		Title:        title,
		Ord:          len(topic.SubTopicRefs),
		QuestionRefs: []string{},
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.subTopicRepo.Create(txCtx, subTopic); err != nil {
			return err
		}
		refs := append(append([]string{}, topic.SubTopicRefs...), subTopic.ID)
		return s.topicRepo.ReplaceSubTopicRefs(txCtx, topicID, refs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sub-topic created", "id", subTopic.ID, "title", subTopic.Title, "topic_id", topicID)

	return &models.TreeSubTopic{
		ID:        subTopic.ID,
		Title:     subTopic.Title,
		Questions: []models.TreeQuestion{},
	}, nil
}

// UpdateSubTopic renames a sub-topic.
func (s *subTopicService) UpdateSubTopic(ctx context.Context, subTopicID string, req *UpdateSubTopicRequest) (*models.SubTopic, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return s.subTopicRepo.UpdateTitle(ctx, subTopicID, req.Title)
}

// DeleteSubTopic removes the sub-topic, its questions, and the parent's
// reference to it, leaf to root in one transaction.
func (s *subTopicService) DeleteSubTopic(ctx context.Context, topicID, subTopicID string) error {
	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return err
	}

	// A missing sub-topic record still gets its parent reference cleaned up.
	var questionIDs []string
	if subTopic, err := s.subTopicRepo.GetByID(ctx, subTopicID); err == nil {
		questionIDs = subTopic.QuestionRefs
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.questionRepo.DeleteByIDs(txCtx, questionIDs); err != nil {
			return err
		}
		if err := s.subTopicRepo.Delete(txCtx, subTopicID); err != nil {
			return err
		}
		refs := make([]string, 0, len(topic.SubTopicRefs))
		for _, ref := range topic.SubTopicRefs {
			if ref != subTopicID {
				refs = append(refs, ref)
			}
		}
		return s.topicRepo.ReplaceSubTopicRefs(txCtx, topicID, refs)
	})
	if err != nil {
		return err
	}

	s.logger.Info("sub-topic deleted", "id", subTopicID, "topic_id", topicID, "questions", len(questionIDs))
	return nil
}

// ReorderSubTopics overwrites the parent topic's sub-topic order.
func (s *subTopicService) ReorderSubTopics(ctx context.Context, topicID string, orderedIDs []string) error {
	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return err
	}

	if err := validatePermutation(topic.SubTopicRefs, orderedIDs); err != nil {
		return err
	}

	return s.topicRepo.ReplaceSubTopicRefs(ctx, topicID, orderedIDs)
}
