package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"cfahub/internal/auth"
	"cfahub/internal/config"
	"cfahub/internal/contentkind"
	"cfahub/internal/handler"
	"cfahub/internal/middleware"
	"cfahub/internal/repository/postgres"
	"cfahub/internal/service"

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
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Content kind registry (table/column bindings for the three families)
	kinds, err := contentkind.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load content kind registry: %v", err)
	}

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	contentRepo := postgres.NewContentRepository(repoConfig, kinds)
	shareRepo := postgres.NewShareRepository(repoConfig, kinds)
	tagRepo := postgres.NewTagRepository(repoConfig, kinds)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	groupRepo := postgres.NewGroupRepository(repoConfig)
	profileRepo := postgres.NewProfileRepository(repoConfig)
	quizRepo := postgres.NewQuizRepository(repoConfig)
	cardRepo := postgres.NewFlashcardRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	accessService := service.NewAccessService(groupRepo, shareRepo)
	contentService := service.NewContentService(kinds, contentRepo, shareRepo, tagRepo,
		groupRepo, profileRepo, folderRepo, txManager, logger)
	sharingService := service.NewSharingService(contentRepo, shareRepo, groupRepo, txManager, logger)
	folderService := service.NewFolderService(kinds, folderRepo, logger)
	tagService := service.NewTagService(contentRepo, tagRepo, txManager, logger)
	groupService := service.NewGroupService(groupRepo, profileRepo, txManager, logger)
	quizService := service.NewQuizService(contentRepo, quizRepo, accessService, txManager, logger)
	flashcardService := service.NewFlashcardService(contentRepo, cardRepo, accessService, txManager, logger)

	// Create handlers
	contentHandler := handler.NewContentHandler(kinds, contentService, sharingService, tagService, cfg.DefaultLocale, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	groupHandler := handler.NewGroupHandler(groupService, logger)
	quizHandler := handler.NewQuizHandler(quizService, logger)
	flashcardHandler := handler.NewFlashcardHandler(flashcardService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Content routes, shared by the three kinds
	mux.HandleFunc("GET /api/content/{kind}", contentHandler.List)
	mux.HandleFunc("POST /api/content/{kind}", contentHandler.Create)
	mux.HandleFunc("GET /api/content/{kind}/{id}", contentHandler.Get)
	mux.HandleFunc("DELETE /api/content/{kind}/{id}", contentHandler.Delete)
	mux.HandleFunc("PATCH /api/content/{kind}/{id}/settings", contentHandler.SaveSettings)
	mux.HandleFunc("PUT /api/content/{kind}/{id}/tags", contentHandler.SetTags)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.Create)
	mux.HandleFunc("GET /api/folders", folderHandler.List)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.Delete)

	// Tag routes
	mux.HandleFunc("POST /api/tags", tagHandler.Create)
	mux.HandleFunc("GET /api/tags", tagHandler.List)

	// Group routes
	mux.HandleFunc("POST /api/groups", groupHandler.Create)
	mux.HandleFunc("GET /api/groups", groupHandler.List)
	mux.HandleFunc("POST /api/groups/join", groupHandler.Join)
	mux.HandleFunc("GET /api/users/me/active-group", groupHandler.GetActiveGroup)
	mux.HandleFunc("PUT /api/users/me/active-group", groupHandler.SetActiveGroup)

	// Quiz question routes
	mux.HandleFunc("GET /api/quizzes/{id}/questions", quizHandler.ListQuestions)
	mux.HandleFunc("POST /api/quizzes/{id}/questions", quizHandler.AddQuestion)
	mux.HandleFunc("GET /api/quizzes/{id}/questions/export", quizHandler.Export) // Must come before {questionID} route
	mux.HandleFunc("POST /api/quizzes/{id}/questions/import", quizHandler.Import)
	mux.HandleFunc("PATCH /api/quizzes/{id}/questions/{questionID}", quizHandler.UpdateQuestion)
	mux.HandleFunc("DELETE /api/quizzes/{id}/questions/{questionID}", quizHandler.DeleteQuestion)
	mux.HandleFunc("POST /api/quizzes/{id}/attempts", quizHandler.SubmitAttempt)

	// Flashcard routes
	mux.HandleFunc("GET /api/flashcards/{id}/cards", flashcardHandler.ListCards)
	mux.HandleFunc("POST /api/flashcards/{id}/cards", flashcardHandler.AddCard)
	mux.HandleFunc("GET /api/flashcards/{id}/cards/export", flashcardHandler.Export)
	mux.HandleFunc("POST /api/flashcards/{id}/cards/import", flashcardHandler.Import)
	mux.HandleFunc("DELETE /api/flashcards/{id}/cards/{cardID}", flashcardHandler.DeleteCard)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.Auth(jwtVerifier, logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOriginList(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
