package api

import (
	"net/http"

	"knugget-backend/internal/auth/delivery"
	authUsecase "knugget-backend/internal/auth/usecase"
	linkedinDelivery "knugget-backend/internal/linkedin/delivery"
	searchDelivery "knugget-backend/internal/search/delivery"
	summaryDelivery "knugget-backend/internal/summary/delivery"
	websiteDelivery "knugget-backend/internal/website/delivery"
	"knugget-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUsecase authUsecase.AuthUsecase,
	sseManager *sse.Manager,
	summaryHandler *summaryDelivery.SummaryHandler,
	linkedinHandler *linkedinDelivery.PostHandler,
	websiteHandler *websiteDelivery.WebsiteHandler,
	searchHandler *searchDelivery.SearchHandler,
) {
	authHandler := delivery.NewAuthHandler(authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// SSE endpoint pushing summary generation updates
		api.GET("/events", delivery.AuthMiddleware(authUsecase), func(c *gin.Context) {
			userID := c.GetString("userID")
			sseManager.ServeHTTP(c, userID)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUsecase), authHandler.Me)
		}

		// Video summary routes (protected)
		summaries := api.Group("/summaries")
		summaries.Use(delivery.AuthMiddleware(authUsecase))
		{
			summaries.POST("", summaryHandler.Create)
			summaries.GET("", summaryHandler.List)
			summaries.GET("/stats", summaryHandler.Stats)
			summaries.GET("/:id", summaryHandler.GetByID)
			summaries.PUT("/:id", summaryHandler.Update)
			summaries.DELETE("/:id", summaryHandler.Delete)
			summaries.POST("/bulk-delete", summaryHandler.BulkDelete)
		}

		// Cached video metadata (protected)
		api.GET("/video/metadata/:videoId", delivery.AuthMiddleware(authUsecase), summaryHandler.GetVideoMetadata)

		// Saved LinkedIn post routes (protected)
		posts := api.Group("/linkedin/posts")
		posts.Use(delivery.AuthMiddleware(authUsecase))
		{
			posts.POST("", linkedinHandler.SavePost)
			posts.GET("", linkedinHandler.List)
			posts.GET("/stats", linkedinHandler.Stats)
			posts.GET("/:id", linkedinHandler.GetByID)
			posts.PUT("/:id", linkedinHandler.Update)
			posts.DELETE("/:id", linkedinHandler.Delete)
			posts.POST("/bulk-delete", linkedinHandler.BulkDelete)
		}

		// Website summary routes (protected)
		websites := api.Group("/websites")
		websites.Use(delivery.AuthMiddleware(authUsecase))
		{
			websites.POST("", websiteHandler.SaveWebsite)
			websites.GET("", websiteHandler.List)
			websites.GET("/stats", websiteHandler.Stats)
			websites.GET("/:id", websiteHandler.GetByID)
			websites.PUT("/:id", websiteHandler.Update)
			websites.DELETE("/:id", websiteHandler.Delete)
			websites.POST("/bulk-delete", websiteHandler.BulkDelete)
		}

		// Search routes (protected)
		search := api.Group("/search")
		search.Use(delivery.AuthMiddleware(authUsecase))
		{
			search.POST("/semantic", searchHandler.SemanticSearch)
		}
	}
}
