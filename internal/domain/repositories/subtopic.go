package repositories

import (
	"context"

	"codolio/internal/domain/models"
)

// SubTopicRepository defines data access operations for sub-topics.
type SubTopicRepository interface {
	// Create inserts a sub-topic; the store assigns the id and timestamps.
	Create(ctx context.Context, subTopic *models.SubTopic) error

	// GetByID retrieves a sub-topic, or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.SubTopic, error)

	// GetByIDs retrieves the given sub-topics. Missing ids are skipped, not
	// errors, so a partially failed cascade delete still resolves.
	GetByIDs(ctx context.Context, ids []string) ([]models.SubTopic, error)

	// UpdateTitle renames a sub-topic and returns the updated record.
	UpdateTitle(ctx context.Context, id, title string) (*models.SubTopic, error)

	// ReplaceQuestionRefs overwrites the ordered question id list.
	ReplaceQuestionRefs(ctx context.Context, id string, refs []string) error

	// Delete removes a sub-topic record.
	Delete(ctx context.Context, id string) error

	// DeleteByIDs bulk-deletes sub-topics; missing ids are already done.
	DeleteByIDs(ctx context.Context, ids []string) error

	// DeleteAll removes every sub-topic record.
	DeleteAll(ctx context.Context) error
}
