package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the three record tables if they do not exist.
// Reference lists are TEXT[] columns: array order is display order and a
// reorder overwrites the array wholesale.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "pgcrypto"`); err != nil {
		return err
	}

	createTopics := `
		CREATE TABLE IF NOT EXISTS ` + tables.Topics + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Pending',
			ord INTEGER NOT NULL DEFAULT 0,
			sub_topics TEXT[] NOT NULL DEFAULT '{}',
			questions TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createTopics); err != nil {
		return err
	}

	createSubTopics := `
		CREATE TABLE IF NOT EXISTS ` + tables.SubTopics + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			ord INTEGER NOT NULL DEFAULT 0,
			questions TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createSubTopics); err != nil {
		return err
	}

	createQuestions := `
		CREATE TABLE IF NOT EXISTS ` + tables.Questions + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			is_solved BOOLEAN NOT NULL DEFAULT FALSE,
			is_starred BOOLEAN NOT NULL DEFAULT FALSE,
			notes TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT 'Medium',
			platform TEXT NOT NULL DEFAULT 'leetcode',
			problem_url TEXT NOT NULL DEFAULT '#',
			resource TEXT NOT NULL DEFAULT '#',
			company_tags TEXT[] NOT NULL DEFAULT '{}',
			ord INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createQuestions); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `topics_ord ON ` + tables.Topics + `(ord)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `sub_topics_ord ON ` + tables.SubTopics + `(ord)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `questions_ord ON ` + tables.Questions + `(ord)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// DropTables drops all record tables, children first.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Questions, tables.SubTopics, tables.Topics} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}
