package main

import (
	"log"

	api "knugget-backend/cmd/api"
	authdomain "knugget-backend/internal/auth/domain"
	authRepo "knugget-backend/internal/auth/repository"
	authUsecase "knugget-backend/internal/auth/usecase"
	linkedindomain "knugget-backend/internal/linkedin/domain"
	linkedinRepo "knugget-backend/internal/linkedin/repository"
	linkedinUsecase "knugget-backend/internal/linkedin/usecase"
	summarydomain "knugget-backend/internal/summary/domain"
	summaryRepo "knugget-backend/internal/summary/repository"
	summaryUsecase "knugget-backend/internal/summary/usecase"
	websitedomain "knugget-backend/internal/website/domain"
	websiteRepo "knugget-backend/internal/website/repository"
	websiteUsecase "knugget-backend/internal/website/usecase"
	"knugget-backend/pkg/config"
	"knugget-backend/pkg/database"
	"knugget-backend/pkg/sse"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&summarydomain.Summary{},
		&summarydomain.VideoMetadata{},
		&linkedindomain.LinkedinPost{},
		&websitedomain.WebsiteSummary{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	summaryRepository := summaryRepo.NewSummaryRepository(db)
	metadataRepository := summaryRepo.NewVideoMetadataRepository(db)
	linkedinRepository := linkedinRepo.NewLinkedinPostRepository(db)
	websiteRepository := websiteRepo.NewWebsiteSummaryRepository(db)

	// Initialize SSE Manager
	sseManager := sse.NewManager()
	go sseManager.Run()

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg)
	summaryUsecaseInstance := summaryUsecase.NewSummaryUsecase(summaryRepository, metadataRepository)
	linkedinUsecaseInstance := linkedinUsecase.NewLinkedinPostUsecase(linkedinRepository)
	websiteUsecaseInstance := websiteUsecase.NewWebsiteUsecase(websiteRepository)

	// Initialize HTTP handler (wires AI, vector search and the worker)
	handler := api.NewHandler(
		authUsecaseInstance,
		summaryUsecaseInstance,
		linkedinUsecaseInstance,
		websiteUsecaseInstance,
		sseManager,
		cfg,
		summaryRepository,
		websiteRepository,
	)
	defer handler.Stop()

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
