package app

import (
	"github.com/prepmitra/currentaffairs-backend/internal/handlers"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
)

type Handlers struct {
	Article        *handlers.ArticleHandler
	Bookmark       *handlers.BookmarkHandler
	Note           *handlers.NoteHandler
	Recommendation *handlers.RecommendationHandler
	Interaction    *handlers.InteractionHandler
	Quiz           *handlers.QuizHandler
	Profile        *handlers.ProfileHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Article:        handlers.NewArticleHandler(log, services.Article, services.Interaction),
		Bookmark:       handlers.NewBookmarkHandler(log, services.Bookmark, services.Interaction),
		Note:           handlers.NewNoteHandler(log, services.Note, services.Interaction),
		Recommendation: handlers.NewRecommendationHandler(log, services.Recommendation),
		Interaction:    handlers.NewInteractionHandler(log, services.Interaction),
		Quiz:           handlers.NewQuizHandler(log, services.Quiz, services.Interaction),
		Profile:        handlers.NewProfileHandler(log, services.Profile),
	}
}
