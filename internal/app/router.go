package app

import (
	"github.com/gin-gonic/gin"

	"github.com/prepmitra/currentaffairs-backend/internal/server"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:        middleware.Auth,
		ArticleHandler:        handlers.Article,
		BookmarkHandler:       handlers.Bookmark,
		NoteHandler:           handlers.Note,
		RecommendationHandler: handlers.Recommendation,
		InteractionHandler:    handlers.Interaction,
		QuizHandler:           handlers.Quiz,
		ProfileHandler:        handlers.Profile,
	})
}
