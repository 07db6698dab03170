package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"codolio/internal/config"
	"codolio/internal/platforms"
	"codolio/internal/repository/postgres"
	"codolio/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed questions")
	clearData := flag.Bool("clear-data", false, "Clear all topics, sub-topics and questions (keep schema)")
	sheetPath := flag.String("sheet", "", "Question sheet to seed from (defaults to SHEET_PATH)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if *sheetPath == "" {
		*sheetPath = cfg.SheetPath
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database from %s (environment: %s, prefix: %s)", *sheetPath, cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Clear existing data (always before seeding; the pipeline is not idempotent)
	log.Println("⚠️  Clearing existing topics, sub-topics and questions...")
	if err := clearAllData(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}

	// Exit early if clear-data mode (just clear and exit)
	if *clearData {
		log.Println("✅ Data cleared successfully")
		return
	}

	// Load the question sheet
	sheet, err := seed.LoadSheet(*sheetPath)
	if err != nil {
		log.Fatalf("Failed to load question sheet: %v", err)
	}

	// Initialize platform registry
	registry, err := platforms.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize platform registry: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	topicRepo := postgres.NewTopicRepository(repoConfig)
	subTopicRepo := postgres.NewSubTopicRepository(repoConfig)
	questionRepo := postgres.NewQuestionRepository(repoConfig)

	// Run the seed pipeline
	log.Println("📝 Seeding topics, sub-topics and questions...")
	pipeline := seed.NewPipeline(topicRepo, subTopicRepo, questionRepo, registry, logger)
	summary, err := pipeline.Run(ctx, sheet)
	if err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Printf("✅ Seeded %d topics, %d sub-topics, %d questions", summary.Topics, summary.SubTopics, summary.Questions)
	log.Println("🎉 Seeding complete!")
}

// clearAllData deletes all rows, children first
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Questions, tables.SubTopics, tables.Topics} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
