package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"codolio/internal/domain"
	"codolio/internal/domain/models"
	"codolio/internal/domain/repositories"
)

// PostgresSubTopicRepository implements the SubTopicRepository interface
type PostgresSubTopicRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSubTopicRepository creates a new sub-topic repository
func NewSubTopicRepository(config *RepositoryConfig) repositories.SubTopicRepository {
	return &PostgresSubTopicRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const subTopicColumns = "id, title, ord, questions, created_at, updated_at"

func scanSubTopic(row interface{ Scan(...interface{}) error }, st *models.SubTopic) error {
	return row.Scan(
		&st.ID,
		&st.Title,
		&st.Ord,
		&st.QuestionRefs,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
}

// Create inserts a sub-topic; the store assigns id and timestamps
func (r *PostgresSubTopicRepository) Create(ctx context.Context, subTopic *models.SubTopic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, ord, questions)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.SubTopics)

	if subTopic.QuestionRefs == nil {
		subTopic.QuestionRefs = []string{}
	}

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		subTopic.Title,
		subTopic.Ord,
		subTopic.QuestionRefs,
	).Scan(&subTopic.ID, &subTopic.CreatedAt, &subTopic.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create sub-topic: %w", err)
	}

	return nil
}

// GetByID retrieves a sub-topic by ID
func (r *PostgresSubTopicRepository) GetByID(ctx context.Context, id string) (*models.SubTopic, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, subTopicColumns, r.tables.SubTopics)

	var subTopic models.SubTopic
	executor := GetExecutor(ctx, r.pool)
	if err := scanSubTopic(executor.QueryRow(ctx, query, id), &subTopic); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("sub-topic %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get sub-topic: %w", err)
	}

	return &subTopic, nil
}

// GetByIDs retrieves the given sub-topics; missing ids are skipped
func (r *PostgresSubTopicRepository) GetByIDs(ctx context.Context, ids []string) ([]models.SubTopic, error) {
	if len(ids) == 0 {
		return []models.SubTopic{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1)`, subTopicColumns, r.tables.SubTopics)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get sub-topics: %w", err)
	}
	defer rows.Close()

	subTopics := []models.SubTopic{}
	for rows.Next() {
		var subTopic models.SubTopic
		if err := scanSubTopic(rows, &subTopic); err != nil {
			return nil, fmt.Errorf("scan sub-topic: %w", err)
		}
		subTopics = append(subTopics, subTopic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sub-topics: %w", err)
	}

	return subTopics, nil
}

// UpdateTitle renames a sub-topic
func (r *PostgresSubTopicRepository) UpdateTitle(ctx context.Context, id, title string) (*models.SubTopic, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET title = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, r.tables.SubTopics, subTopicColumns)

	var subTopic models.SubTopic
	executor := GetExecutor(ctx, r.pool)
	if err := scanSubTopic(executor.QueryRow(ctx, query, id, title), &subTopic); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("sub-topic %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update sub-topic: %w", err)
	}

	return &subTopic, nil
}

// ReplaceQuestionRefs overwrites the ordered question id list
func (r *PostgresSubTopicRepository) ReplaceQuestionRefs(ctx context.Context, id string, refs []string) error {
	if refs == nil {
		refs = []string{}
	}
	query := fmt.Sprintf(`UPDATE %s SET questions = $2, updated_at = NOW() WHERE id = $1`, r.tables.SubTopics)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, refs)
	if err != nil {
		return fmt.Errorf("replace sub-topic questions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sub-topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a sub-topic record
func (r *PostgresSubTopicRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.SubTopics)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete sub-topic: %w", err)
	}
	return nil
}

// DeleteByIDs bulk-deletes sub-topics; missing ids count as already deleted
func (r *PostgresSubTopicRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.SubTopics)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("delete sub-topics: %w", err)
	}
	return nil
}

// DeleteAll removes every sub-topic record
func (r *PostgresSubTopicRepository) DeleteAll(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, r.tables.SubTopics)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query); err != nil {
		return fmt.Errorf("delete all sub-topics: %w", err)
	}
	return nil
}
