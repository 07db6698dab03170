package repositories

import (
	"context"

	"codolio/internal/domain/models"
)

// TopicRepository defines data access operations for topics.
type TopicRepository interface {
	// Create inserts a topic; the store assigns the id and timestamps.
	Create(ctx context.Context, topic *models.Topic) error

	// GetByID retrieves a topic, or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Topic, error)

	// ListAll retrieves every topic ordered by ordinal position.
	ListAll(ctx context.Context) ([]models.Topic, error)

	// Update applies a partial field update and returns the updated record.
	Update(ctx context.Context, id string, update *models.TopicUpdate) (*models.Topic, error)

	// SetOrd sets a topic's ordinal position.
	SetOrd(ctx context.Context, id string, ord int) error

	// ReplaceSubTopicRefs overwrites the ordered sub-topic id list.
	ReplaceSubTopicRefs(ctx context.Context, id string, refs []string) error

	// ReplaceQuestionRefs overwrites the ordered direct question id list.
	ReplaceQuestionRefs(ctx context.Context, id string, refs []string) error

	// Delete removes a topic record. Children are the caller's problem.
	Delete(ctx context.Context, id string) error

	// Count returns the number of topics.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every topic record.
	DeleteAll(ctx context.Context) error
}
