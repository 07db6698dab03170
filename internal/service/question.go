package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"codolio/internal/domain"
	"codolio/internal/domain/models"
	"codolio/internal/domain/repositories"
	"codolio/internal/platforms"
)

// CreateQuestionRequest carries the fields for a new question. Empty tag
// entries are dropped at input time; URL fields fall back to the "#"
// placeholder the UI treats as not-a-real-link.
type CreateQuestionRequest struct {
	Title       string            `json:"title"`
	Difficulty  models.Difficulty `json:"difficulty"`
	ProblemURL  string            `json:"problemUrl"`
	Platform    string            `json:"platform"`
	Resource    string            `json:"resource"`
	CompanyTags []string          `json:"companyTags"`
}

// Validate checks field limits and the difficulty enumeration.
func (r *CreateQuestionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(0, 300)),
		validation.Field(&r.Difficulty, validation.In(
			models.DifficultyBasic,
			models.DifficultyEasy,
			models.DifficultyMedium,
			models.DifficultyHard,
		)),
	)
}

// UpdateQuestionRequest carries a partial question update.
type UpdateQuestionRequest struct {
	Title       *string            `json:"title,omitempty"`
	Difficulty  *models.Difficulty `json:"difficulty,omitempty"`
	ProblemURL  *string            `json:"problemUrl,omitempty"`
	Platform    *string            `json:"platform,omitempty"`
	Resource    *string            `json:"resource,omitempty"`
	CompanyTags *[]string          `json:"companyTags,omitempty"`
}

// Validate checks the enumerated fields when present.
func (r *UpdateQuestionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(1, 300)),
		validation.Field(&r.Difficulty, validation.In(
			models.DifficultyBasic,
			models.DifficultyEasy,
			models.DifficultyMedium,
			models.DifficultyHard,
		)),
	)
}

// NotesRequest replaces a question's free-text notes.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// QuestionService owns question lifecycle. Operations that touch an owner's
// list take a tagged Owner so the topic-direct and sub-topic-owned paths
// branch exactly once.
type QuestionService interface {
	CreateQuestion(ctx context.Context, owner models.Owner, req *CreateQuestionRequest) (*models.TreeQuestion, error)
	UpdateQuestion(ctx context.Context, questionID string, req *UpdateQuestionRequest) (*models.Question, error)
	ToggleSolved(ctx context.Context, questionID string) (*models.Question, error)
	ToggleStarred(ctx context.Context, questionID string) (*models.Question, error)
	SetNotes(ctx context.Context, questionID, notes string) (*models.Question, error)
	DeleteQuestion(ctx context.Context, owner models.Owner, questionID string) error
	ReorderQuestions(ctx context.Context, owner models.Owner, orderedIDs []string) error
}

type questionService struct {
	topicRepo    repositories.TopicRepository
	subTopicRepo repositories.SubTopicRepository
	questionRepo repositories.QuestionRepository
	txManager    repositories.TransactionManager
	registry     *platforms.Registry
	logger       *slog.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(
	topicRepo repositories.TopicRepository,
	subTopicRepo repositories.SubTopicRepository,
	questionRepo repositories.QuestionRepository,
	txManager repositories.TransactionManager,
	registry *platforms.Registry,
	logger *slog.Logger,
) QuestionService {
	return &questionService{
		topicRepo:    topicRepo,
		subTopicRepo: subTopicRepo,
		questionRepo: questionRepo,
		txManager:    txManager,
		registry:     registry,
		logger:       logger,
	}
}

// ownerRefs returns the owner's current question id list.
func (s *questionService) ownerRefs(ctx context.Context, owner models.Owner) ([]string, error) {
	switch owner.Kind {
	case models.OwnerSubTopic:
		subTopic, err := s.subTopicRepo.GetByID(ctx, owner.SubTopicID)
		if err != nil {
			return nil, err
		}
		return subTopic.QuestionRefs, nil
	default:
		topic, err := s.topicRepo.GetByID(ctx, owner.TopicID)
		if err != nil {
			return nil, err
		}
		return topic.QuestionRefs, nil
	}
}

// replaceOwnerRefs overwrites the owner's question id list.
func (s *questionService) replaceOwnerRefs(ctx context.Context, owner models.Owner, refs []string) error {
	if owner.Kind == models.OwnerSubTopic {
		return s.subTopicRepo.ReplaceQuestionRefs(ctx, owner.SubTopicID, refs)
	}
	return s.topicRepo.ReplaceQuestionRefs(ctx, owner.TopicID, refs)
}

// CreateQuestion inserts the record and appends it to the owner's list.
func (s *questionService) CreateQuestion(ctx context.Context, owner models.Owner, req *CreateQuestionRequest) (*models.TreeQuestion, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.Platform != "" && !s.registry.Known(req.Platform) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown platform %q", req.Platform)}
	}

	refs, err := s.ownerRefs(ctx, owner)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		Title:       defaultString(req.Title, "New Question"),
		IsSolved:    false,
		IsStarred:   false,
		Notes:       "",
		Difficulty:  req.Difficulty,
		Platform:    req.Platform,
		ProblemURL:  defaultString(req.ProblemURL, models.PlaceholderURL),
		Resource:    defaultString(req.Resource, models.PlaceholderURL),
		CompanyTags: dropEmptyTags(req.CompanyTags),
		Ord:         len(refs),
	}
	if question.Difficulty == "" {
		question.Difficulty = models.DefaultDifficulty
	}
	if question.Platform == "" {
		question.Platform = platforms.Default
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.questionRepo.Create(txCtx, question); err != nil {
			return err
		}
		return s.replaceOwnerRefs(txCtx, owner, append(append([]string{}, refs...), question.ID))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("question created",
		"id", question.ID,
		"title", question.Title,
		"owner_kind", owner.Kind,
		"topic_id", owner.TopicID,
	)

	tree := models.TreeQuestionFrom(question)
	return &tree, nil
}

// UpdateQuestion applies a partial update; absent fields are retained.
func (s *questionService) UpdateQuestion(ctx context.Context, questionID string, req *UpdateQuestionRequest) (*models.Question, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.Platform != nil && !s.registry.Known(*req.Platform) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown platform %q", *req.Platform)}
	}

	update := &models.QuestionUpdate{
		Title:      req.Title,
		Difficulty: req.Difficulty,
		ProblemURL: req.ProblemURL,
		Platform:   req.Platform,
		Resource:   req.Resource,
	}
	if req.CompanyTags != nil {
		tags := dropEmptyTags(*req.CompanyTags)
		update.CompanyTags = &tags
	}

	return s.questionRepo.Update(ctx, questionID, update)
}

// ToggleSolved flips the solved flag. Toggling twice is an involution.
func (s *questionService) ToggleSolved(ctx context.Context, questionID string) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return s.questionRepo.SetSolved(ctx, questionID, !question.IsSolved)
}

// ToggleStarred flips the starred flag.
func (s *questionService) ToggleStarred(ctx context.Context, questionID string) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return s.questionRepo.SetStarred(ctx, questionID, !question.IsStarred)
}

// SetNotes replaces the free-text notes.
func (s *questionService) SetNotes(ctx context.Context, questionID, notes string) (*models.Question, error) {
	return s.questionRepo.SetNotes(ctx, questionID, notes)
}

// DeleteQuestion removes the record and the owner's reference to it. A
// reference that is already gone is not an error.
func (s *questionService) DeleteQuestion(ctx context.Context, owner models.Owner, questionID string) error {
	refs, err := s.ownerRefs(ctx, owner)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref != questionID {
			remaining = append(remaining, ref)
		}
	}

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.replaceOwnerRefs(txCtx, owner, remaining); err != nil {
			return err
		}
		return s.questionRepo.Delete(txCtx, questionID)
	})
}

// ReorderQuestions overwrites the owner's question order.
func (s *questionService) ReorderQuestions(ctx context.Context, owner models.Owner, orderedIDs []string) error {
	refs, err := s.ownerRefs(ctx, owner)
	if err != nil {
		return err
	}

	if err := validatePermutation(refs, orderedIDs); err != nil {
		return err
	}

	return s.replaceOwnerRefs(ctx, owner, orderedIDs)
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// dropEmptyTags filters blank entries but keeps duplicates and order.
func dropEmptyTags(tags []string) []string {
	out := []string{}
	for _, tag := range tags {
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
