package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"codolio/internal/domain"
	"codolio/internal/domain/models"
	"codolio/internal/domain/repositories"
)

// PostgresTopicRepository implements the TopicRepository interface
type PostgresTopicRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(config *RepositoryConfig) repositories.TopicRepository {
	return &PostgresTopicRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const topicColumns = "id, title, description, status, ord, sub_topics, questions, created_at, updated_at"

func scanTopic(row interface{ Scan(...interface{}) error }, t *models.Topic) error {
	return row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Ord,
		&t.SubTopicRefs,
		&t.QuestionRefs,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

// Create inserts a topic; the store assigns id and timestamps
func (r *PostgresTopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, description, status, ord, sub_topics, questions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Topics)

	if topic.SubTopicRefs == nil {
		topic.SubTopicRefs = []string{}
	}
	if topic.QuestionRefs == nil {
		topic.QuestionRefs = []string{}
	}
	if topic.Status == "" {
		topic.Status = models.TopicStatusPending
	}

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		topic.Title,
		topic.Description,
		topic.Status,
		topic.Ord,
		topic.SubTopicRefs,
		topic.QuestionRefs,
	).Scan(&topic.ID, &topic.CreatedAt, &topic.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create topic: %w", err)
	}

	return nil
}

// GetByID retrieves a topic by ID
func (r *PostgresTopicRepository) GetByID(ctx context.Context, id string) (*models.Topic, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, topicColumns, r.tables.Topics)

	var topic models.Topic
	executor := GetExecutor(ctx, r.pool)
	if err := scanTopic(executor.QueryRow(ctx, query, id), &topic); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get topic: %w", err)
	}

	return &topic, nil
}

// ListAll retrieves every topic ordered by ordinal position
func (r *PostgresTopicRepository) ListAll(ctx context.Context) ([]models.Topic, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY ord ASC`, topicColumns, r.tables.Topics)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var topic models.Topic
		if err := scanTopic(rows, &topic); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}

	return topics, nil
}

// Update applies a partial field update; absent fields are retained
func (r *PostgresTopicRepository) Update(ctx context.Context, id string, update *models.TopicUpdate) (*models.Topic, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    status = COALESCE($4, status),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, r.tables.Topics, topicColumns)

	var topic models.Topic
	executor := GetExecutor(ctx, r.pool)
	err := scanTopic(executor.QueryRow(ctx, query, id, update.Title, update.Description, update.Status), &topic)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update topic: %w", err)
	}

	return &topic, nil
}

// SetOrd sets a topic's ordinal position
func (r *PostgresTopicRepository) SetOrd(ctx context.Context, id string, ord int) error {
	query := fmt.Sprintf(`UPDATE %s SET ord = $2, updated_at = NOW() WHERE id = $1`, r.tables.Topics)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, ord)
	if err != nil {
		return fmt.Errorf("set topic ord: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ReplaceSubTopicRefs overwrites the ordered sub-topic id list
func (r *PostgresTopicRepository) ReplaceSubTopicRefs(ctx context.Context, id string, refs []string) error {
	return r.replaceRefs(ctx, id, "sub_topics", refs)
}

// ReplaceQuestionRefs overwrites the ordered direct question id list
func (r *PostgresTopicRepository) ReplaceQuestionRefs(ctx context.Context, id string, refs []string) error {
	return r.replaceRefs(ctx, id, "questions", refs)
}

func (r *PostgresTopicRepository) replaceRefs(ctx context.Context, id, column string, refs []string) error {
	if refs == nil {
		refs = []string{}
	}
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, updated_at = NOW() WHERE id = $1`, r.tables.Topics, column)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, refs)
	if err != nil {
		return fmt.Errorf("replace topic %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a topic record
func (r *PostgresTopicRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Topics)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}

// Count returns the number of topics
func (r *PostgresTopicRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Topics)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count topics: %w", err)
	}
	return count, nil
}

// DeleteAll removes every topic record
func (r *PostgresTopicRepository) DeleteAll(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, r.tables.Topics)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query); err != nil {
		return fmt.Errorf("delete all topics: %w", err)
	}
	return nil
}
