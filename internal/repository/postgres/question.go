package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"codolio/internal/domain"
	"codolio/internal/domain/models"
	"codolio/internal/domain/repositories"
)

// PostgresQuestionRepository implements the QuestionRepository interface
type PostgresQuestionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(config *RepositoryConfig) repositories.QuestionRepository {
	return &PostgresQuestionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const questionColumns = "id, title, is_solved, is_starred, notes, difficulty, platform, problem_url, resource, company_tags, ord, created_at, updated_at"

func scanQuestion(row interface{ Scan(...interface{}) error }, q *models.Question) error {
	return row.Scan(
		&q.ID,
		&q.Title,
		&q.IsSolved,
		&q.IsStarred,
		&q.Notes,
		&q.Difficulty,
		&q.Platform,
		&q.ProblemURL,
		&q.Resource,
		&q.CompanyTags,
		&q.Ord,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
}

// Create inserts a question; the store assigns id and timestamps
func (r *PostgresQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, is_solved, is_starred, notes, difficulty, platform, problem_url, resource, company_tags, ord)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, r.tables.Questions)

	if question.CompanyTags == nil {
		question.CompanyTags = []string{}
	}

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		question.Title,
		question.IsSolved,
		question.IsStarred,
		question.Notes,
		question.Difficulty,
		question.Platform,
		question.ProblemURL,
		question.Resource,
		question.CompanyTags,
		question.Ord,
	).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

// GetByID retrieves a question by ID
func (r *PostgresQuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, questionColumns, r.tables.Questions)

	var question models.Question
	executor := GetExecutor(ctx, r.pool)
	if err := scanQuestion(executor.QueryRow(ctx, query, id), &question); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &question, nil
}

// GetByIDs retrieves the given questions; missing ids are skipped
func (r *PostgresQuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1)`, questionColumns, r.tables.Questions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var question models.Question
		if err := scanQuestion(rows, &question); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}

// Update applies a partial field update; absent fields are retained
func (r *PostgresQuestionRepository) Update(ctx context.Context, id string, update *models.QuestionUpdate) (*models.Question, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = COALESCE($2, title),
		    difficulty = COALESCE($3, difficulty),
		    problem_url = COALESCE($4, problem_url),
		    platform = COALESCE($5, platform),
		    resource = COALESCE($6, resource),
		    company_tags = COALESCE($7, company_tags),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, r.tables.Questions, questionColumns)

	var question models.Question
	executor := GetExecutor(ctx, r.pool)
	err := scanQuestion(executor.QueryRow(ctx, query, id,
		update.Title,
		update.Difficulty,
		update.ProblemURL,
		update.Platform,
		update.Resource,
		update.CompanyTags,
	), &question)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update question: %w", err)
	}

	return &question, nil
}

// SetSolved sets the solved flag
func (r *PostgresQuestionRepository) SetSolved(ctx context.Context, id string, solved bool) (*models.Question, error) {
	return r.setFlag(ctx, id, "is_solved", solved)
}

// SetStarred sets the starred flag
func (r *PostgresQuestionRepository) SetStarred(ctx context.Context, id string, starred bool) (*models.Question, error) {
	return r.setFlag(ctx, id, "is_starred", starred)
}

func (r *PostgresQuestionRepository) setFlag(ctx context.Context, id, column string, value bool) (*models.Question, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, r.tables.Questions, column, questionColumns)

	var question models.Question
	executor := GetExecutor(ctx, r.pool)
	if err := scanQuestion(executor.QueryRow(ctx, query, id, value), &question); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("set question %s: %w", column, err)
	}

	return &question, nil
}

// SetNotes replaces the notes text
func (r *PostgresQuestionRepository) SetNotes(ctx context.Context, id, notes string) (*models.Question, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET notes = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, r.tables.Questions, questionColumns)

	var question models.Question
	executor := GetExecutor(ctx, r.pool)
	if err := scanQuestion(executor.QueryRow(ctx, query, id, notes), &question); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("set question notes: %w", err)
	}

	return &question, nil
}

// Delete removes a question record
func (r *PostgresQuestionRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Questions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

// DeleteByIDs bulk-deletes questions; missing ids count as already deleted
func (r *PostgresQuestionRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Questions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	return nil
}

// ClearAllSolved resets every question's solved flag to false
func (r *PostgresQuestionRepository) ClearAllSolved(ctx context.Context) error {
	query := fmt.Sprintf(`UPDATE %s SET is_solved = FALSE, updated_at = NOW() WHERE is_solved = TRUE`, r.tables.Questions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query); err != nil {
		return fmt.Errorf("clear solved flags: %w", err)
	}
	return nil
}

// DeleteAll removes every question record
func (r *PostgresQuestionRepository) DeleteAll(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, r.tables.Questions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query); err != nil {
		return fmt.Errorf("delete all questions: %w", err)
	}
	return nil
}
