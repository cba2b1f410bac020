package api

import (
	"log"

	authUsecase "knugget-backend/internal/auth/usecase"
	linkedinDelivery "knugget-backend/internal/linkedin/delivery"
	linkedinUsecasePkg "knugget-backend/internal/linkedin/usecase"
	searchDelivery "knugget-backend/internal/search/delivery"
	searchUsecasePkg "knugget-backend/internal/search/usecase"
	summaryDelivery "knugget-backend/internal/summary/delivery"
	summaryRepo "knugget-backend/internal/summary/repository"
	summaryUsecasePkg "knugget-backend/internal/summary/usecase"
	websiteDelivery "knugget-backend/internal/website/delivery"
	websiteRepo "knugget-backend/internal/website/repository"
	websiteUsecasePkg "knugget-backend/internal/website/usecase"
	"knugget-backend/pkg/ai"
	"knugget-backend/pkg/chroma"
	"knugget-backend/pkg/config"
	"knugget-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase     authUsecase.AuthUsecase
	sseManager      *sse.Manager
	config          *config.Config
	worker          *summaryUsecasePkg.GenerationWorker
	summaryHandler  *summaryDelivery.SummaryHandler
	linkedinHandler *linkedinDelivery.PostHandler
	websiteHandler  *websiteDelivery.WebsiteHandler
	searchHandler   *searchDelivery.SearchHandler
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	summaryUc summaryUsecasePkg.SummaryUsecase,
	linkedinUc linkedinUsecasePkg.LinkedinPostUsecase,
	websiteUc websiteUsecasePkg.WebsiteUsecase,
	sseManager *sse.Manager,
	cfg *config.Config,
	summaryRepository summaryRepo.SummaryRepository,
	websiteRepository websiteRepo.WebsiteSummaryRepository,
) *Handler {
	// Initialize AI service
	aiService, err := ai.NewSummarizerService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiApiKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize AI service: %v", err)
	} else {
		log.Printf("AI service initialized with provider: %s", cfg.AIProvider)
	}

	// Background worker generating video summaries
	worker := summaryUsecasePkg.NewGenerationWorker(summaryRepository, sseManager, cfg.SummaryWorkers)
	if aiService != nil {
		worker.SetAIService(aiService)
		websiteUc.SetSummarizer(aiService)
	}

	// Chroma client for semantic search (optional)
	var searchUc searchUsecasePkg.SearchUsecase
	if cfg.ChromaAPIKey != "" {
		chromaClient, err := chroma.NewChromaClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Chroma client: %v. Semantic search will not be available.", err)
		} else {
			worker.SetIndexer(chromaClient)
			websiteUc.SetIndexer(chromaClient)
			searchUc = searchUsecasePkg.NewSearchUsecase(chromaClient, summaryRepository, websiteRepository)
			log.Println("Chroma client initialized successfully")
		}
	} else {
		log.Println("Warning: CHROMA_API_KEY not set. Semantic search will not be available.")
	}

	worker.Start()
	log.Println("Summary generation worker started")
	summaryUc.SetWorker(worker)

	return &Handler{
		authUsecase:     authUc,
		sseManager:      sseManager,
		config:          cfg,
		worker:          worker,
		summaryHandler:  summaryDelivery.NewSummaryHandler(summaryUc),
		linkedinHandler: linkedinDelivery.NewPostHandler(linkedinUc),
		websiteHandler:  websiteDelivery.NewWebsiteHandler(websiteUc),
		searchHandler:   searchDelivery.NewSearchHandler(searchUc),
	}
}

// Stop drains the background worker
func (h *Handler) Stop() {
	h.worker.Stop()
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.authUsecase, h.sseManager, h.summaryHandler, h.linkedinHandler, h.websiteHandler, h.searchHandler)

	return r.Run(addr)
}
