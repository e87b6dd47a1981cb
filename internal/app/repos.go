package app

import (
	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	UserProfile    repos.UserProfileRepo
	Article        repos.ArticleRepo
	Interaction    repos.InteractionRepo
	Bookmark       repos.BookmarkRepo
	Note           repos.NoteRepo
	Recommendation repos.RecommendationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		UserProfile:    repos.NewUserProfileRepo(db, log),
		Article:        repos.NewArticleRepo(db, log),
		Interaction:    repos.NewInteractionRepo(db, log),
		Bookmark:       repos.NewBookmarkRepo(db, log),
		Note:           repos.NewNoteRepo(db, log),
		Recommendation: repos.NewRecommendationRepo(db, log),
	}
}
