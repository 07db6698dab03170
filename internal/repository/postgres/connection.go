package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"codolio/internal/domain/repositories"
)

// RepositoryConfig holds shared dependencies for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds environment-prefixed table names
type TableNames struct {
	Topics    string
	SubTopics string
	Questions string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Topics:    fmt.Sprintf("%stopics", prefix),
		SubTopics: fmt.Sprintf("%ssub_topics", prefix),
		Questions: fmt.Sprintf("%squestions", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool and verifies the
// connection with a ping before returning it.
//
// Dynamic table prefixes (dev_, test_, prod_) are interpolated into SQL
// strings before they reach the database, so each environment gets its own
// prepared statements and the interpolation is safe.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the context transaction if one is present, otherwise
// the pool. Repositories call this so multi-record operations automatically
// join the caller's transaction.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
