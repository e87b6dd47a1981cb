package app

import (
	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/clients/openai"
	"github.com/prepmitra/currentaffairs-backend/internal/clients/redis"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	Article        services.ArticleService
	Profile        services.ProfileService
	Interaction    services.InteractionService
	Bookmark       services.BookmarkService
	Note           services.NoteService
	Recommendation services.RecommendationService
	Quiz           services.QuizService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")

	// Both clients are optional: without redis the cold-start guard is
	// in-process only, without openai quiz generation reports unavailable.
	guard, err := redis.NewGenerationGuard(log)
	if err != nil {
		log.Warn("redis generation guard unavailable", "error", err)
		guard = nil
	}
	aiClient, err := openai.New(log)
	if err != nil {
		log.Warn("openai client unavailable", "error", err)
		aiClient = nil
	}

	return Services{
		Auth:        services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Article:     services.NewArticleService(db, log, r.Article, r.Bookmark, r.Note),
		Profile:     services.NewProfileService(db, log, r.UserProfile),
		Interaction: services.NewInteractionService(db, log, r.Interaction, r.Article),
		Bookmark:    services.NewBookmarkService(db, log, r.Bookmark, r.Article),
		Note:        services.NewNoteService(db, log, r.Note, r.Article),
		Recommendation: services.NewRecommendationService(
			db,
			log,
			r.Recommendation,
			r.Article,
			r.UserProfile,
			r.Bookmark,
			r.Note,
			r.Interaction,
			guard,
			cfg.GenerationCooldown,
		),
		Quiz: services.NewQuizService(db, log, r.Article, aiClient),
	}
}
