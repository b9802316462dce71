package routes

import (
	"time"

	"snackgames/handlers"
	"snackgames/middleware"
	"snackgames/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with all middleware and API routes.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestLogger())
	r.Use(monitoring.PrometheusMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/metrics", monitoring.MetricsHandler())

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/stats", handlers.GetCatalogStats)
		api.POST("/visitors", handlers.IssueVisitorID)

		api.GET("/games", handlers.GetGames)
		api.GET("/games/categories", handlers.GetCategories)
		api.GET("/games/:id", handlers.GetGameByID)
		api.POST("/games", handlers.CreateGame)
		api.PUT("/games/:id", handlers.UpdateGame)
		api.DELETE("/games/:id", handlers.DeleteGame)
		api.POST("/games/:id/play", handlers.RecordPlay)

		api.GET("/games/:id/comments", handlers.GetComments)
		api.POST("/games/:id/comments", handlers.CreateComment)
		api.DELETE("/comments/:id", handlers.DeleteComment)

		api.GET("/games/:id/rating", handlers.GetRatingSummary)
		api.POST("/games/:id/rating", middleware.RateLimit(30, time.Minute), handlers.SubmitRating)
	}

	return r
}
