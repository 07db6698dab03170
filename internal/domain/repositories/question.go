package repositories

import (
	"context"

	"codolio/internal/domain/models"
)

// QuestionRepository defines data access operations for questions.
type QuestionRepository interface {
	// Create inserts a question; the store assigns the id and timestamps.
	Create(ctx context.Context, question *models.Question) error

	// GetByID retrieves a question, or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Question, error)

	// GetByIDs retrieves the given questions. Missing ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]models.Question, error)

	// Update applies a partial field update and returns the updated record.
	Update(ctx context.Context, id string, update *models.QuestionUpdate) (*models.Question, error)

	// SetSolved sets the solved flag and returns the updated record.
	SetSolved(ctx context.Context, id string, solved bool) (*models.Question, error)

	// SetStarred sets the starred flag and returns the updated record.
	SetStarred(ctx context.Context, id string, starred bool) (*models.Question, error)

	// SetNotes replaces the notes text and returns the updated record.
	SetNotes(ctx context.Context, id, notes string) (*models.Question, error)

	// Delete removes a question record.
	Delete(ctx context.Context, id string) error

	// DeleteByIDs bulk-deletes questions; missing ids are already done.
	DeleteByIDs(ctx context.Context, ids []string) error

	// ClearAllSolved resets every question's solved flag to false.
	ClearAllSolved(ctx context.Context) error

	// DeleteAll removes every question record.
	DeleteAll(ctx context.Context) error
}
