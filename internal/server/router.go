package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/prepmitra/currentaffairs-backend/internal/handlers"
	"github.com/prepmitra/currentaffairs-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware        *middleware.AuthMiddleware
	ArticleHandler        *handlers.ArticleHandler
	BookmarkHandler       *handlers.BookmarkHandler
	NoteHandler           *handlers.NoteHandler
	RecommendationHandler *handlers.RecommendationHandler
	InteractionHandler    *handlers.InteractionHandler
	QuizHandler           *handlers.QuizHandler
	ProfileHandler        *handlers.ProfileHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("currentaffairs-backend"))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Articles
	api.GET("/articles", cfg.ArticleHandler.List)
	api.GET("/articles/bookmarks/my", cfg.BookmarkHandler.ListMine)
	api.GET("/articles/:id", cfg.ArticleHandler.Get)
	api.POST("/articles/:id/bookmark", cfg.BookmarkHandler.Add)
	api.DELETE("/articles/:id/bookmark", cfg.BookmarkHandler.Remove)
	api.POST("/articles/:id/notes", cfg.NoteHandler.Create)
	api.GET("/articles/:id/notes", cfg.NoteHandler.ListForArticle)

	// Notes
	api.PUT("/notes/:noteId", cfg.NoteHandler.Update)
	api.DELETE("/notes/:noteId", cfg.NoteHandler.Delete)

	// Recommendations
	api.GET("/recommendations", cfg.RecommendationHandler.Feed)
	api.POST("/recommendations/generate", cfg.RecommendationHandler.Generate)
	api.POST("/recommendations/:id/viewed", cfg.RecommendationHandler.MarkViewed)
	api.DELETE("/recommendations/stale", cfg.RecommendationHandler.PruneStale)

	// Interactions
	api.GET("/interactions", cfg.InteractionHandler.ListMine)
	api.GET("/interactions/summary", cfg.InteractionHandler.Summary)

	// Quiz
	api.POST("/quiz/generate", cfg.QuizHandler.Generate)

	// Profile
	api.GET("/profile", cfg.ProfileHandler.GetMine)
	api.PUT("/profile", cfg.ProfileHandler.Upsert)

	return router
}
