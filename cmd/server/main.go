package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"codolio/internal/config"
	"codolio/internal/handler"
	"codolio/internal/middleware"
	"codolio/internal/platforms"
	"codolio/internal/repository/postgres"
	"codolio/internal/seed"
	"codolio/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create table names and make sure the schema exists
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
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
	txManager := postgres.NewTransactionManager(pool)

	// Initialize platform registry
	registry, err := platforms.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize platform registry: %v", err)
	}
	logger.Info("platform registry initialized", "platforms", len(registry.List()))

	// Create services
	treeService := service.NewTreeService(topicRepo, subTopicRepo, questionRepo, logger)
	topicService := service.NewTopicService(topicRepo, subTopicRepo, questionRepo, txManager, logger)
	subTopicService := service.NewSubTopicService(topicRepo, subTopicRepo, questionRepo, txManager, logger)
	questionService := service.NewQuestionService(topicRepo, subTopicRepo, questionRepo, txManager, registry, logger)
	pipeline := seed.NewPipeline(topicRepo, subTopicRepo, questionRepo, registry, logger)
	systemService := service.NewSystemService(topicRepo, subTopicRepo, questionRepo, txManager, treeService, pipeline, logger)

	// Create handlers
	topicHandler := handler.NewTopicHandler(topicService, treeService, logger)
	subTopicHandler := handler.NewSubTopicHandler(subTopicService, logger)
	questionHandler := handler.NewQuestionHandler(questionService, logger)
	systemHandler := handler.NewSystemHandler(systemService, cfg.SheetPath, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", systemHandler.HealthCheck)

	// Topic routes
	mux.HandleFunc("GET /api/topics", topicHandler.ListTopics)
	mux.HandleFunc("POST /api/topics", topicHandler.CreateTopic)
	mux.HandleFunc("PUT /api/topics/reorder", topicHandler.ReorderTopics) // Must come before {topicId} route
	mux.HandleFunc("PUT /api/topics/{topicId}", topicHandler.UpdateTopic)
	mux.HandleFunc("DELETE /api/topics/{topicId}", topicHandler.DeleteTopic)

	// Sub-topic routes
	mux.HandleFunc("POST /api/topics/{topicId}/subtopics", subTopicHandler.CreateSubTopic)
	mux.HandleFunc("PUT /api/topics/{topicId}/subtopics/reorder", subTopicHandler.ReorderSubTopics)
	mux.HandleFunc("PUT /api/topics/{topicId}/subtopics/{subTopicId}", subTopicHandler.UpdateSubTopic)
	mux.HandleFunc("DELETE /api/topics/{topicId}/subtopics/{subTopicId}", subTopicHandler.DeleteSubTopic)

	// Question routes scoped directly under a topic
	mux.HandleFunc("POST /api/topics/{topicId}/questions", questionHandler.CreateQuestion)
	mux.HandleFunc("PUT /api/topics/{topicId}/questions/reorder", questionHandler.ReorderQuestions)
	mux.HandleFunc("PUT /api/topics/{topicId}/questions/{questionId}", questionHandler.UpdateQuestion)
	mux.HandleFunc("DELETE /api/topics/{topicId}/questions/{questionId}", questionHandler.DeleteQuestion)
	mux.HandleFunc("PATCH /api/topics/{topicId}/questions/{questionId}/toggle", questionHandler.ToggleSolved)
	mux.HandleFunc("PATCH /api/topics/{topicId}/questions/{questionId}/star", questionHandler.ToggleStarred)
	mux.HandleFunc("PATCH /api/topics/{topicId}/questions/{questionId}/notes", questionHandler.SetNotes)

	// Question routes scoped under a sub-topic
	mux.HandleFunc("POST /api/topics/{topicId}/subtopics/{subTopicId}/questions", questionHandler.CreateQuestion)
	mux.HandleFunc("PUT /api/topics/{topicId}/subtopics/{subTopicId}/questions/reorder", questionHandler.ReorderQuestions)
	mux.HandleFunc("PUT /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}", questionHandler.UpdateQuestion)
	mux.HandleFunc("DELETE /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}", questionHandler.DeleteQuestion)
	mux.HandleFunc("PATCH /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}/toggle", questionHandler.ToggleSolved)
	mux.HandleFunc("PATCH /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}/star", questionHandler.ToggleStarred)
	mux.HandleFunc("PATCH /api/topics/{topicId}/subtopics/{subTopicId}/questions/{questionId}/notes", questionHandler.SetNotes)

	// System routes
	mux.HandleFunc("GET /api/stats", systemHandler.Stats)
	mux.HandleFunc("PATCH /api/system/reset-progress", systemHandler.ResetProgress)
	mux.HandleFunc("POST /api/system/full-reset", systemHandler.FullReset)
	mux.HandleFunc("DELETE /api/reset", systemHandler.Wipe)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Logging → Routes
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be first to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
