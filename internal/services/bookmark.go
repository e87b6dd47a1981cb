package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

// BookmarkService toggles saved state only. Recording the matching
// interaction event is the route handler's job, which keeps this component
// testable in isolation.
type BookmarkService interface {
	// Add is idempotent: if the pair is already bookmarked it returns the
	// existing row. Safe under concurrent calls for the same pair; the
	// storage-level unique index picks the winner and the loser re-reads it.
	Add(ctx context.Context, userID, articleID uuid.UUID) (*types.ArticleBookmark, error)
	// Remove reports whether a row was actually deleted.
	Remove(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	IsBookmarked(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.ArticleBookmark, error)
}

type bookmarkService struct {
	db          *gorm.DB
	log         *logger.Logger
	repo        repos.BookmarkRepo
	articleRepo repos.ArticleRepo
}

func NewBookmarkService(db *gorm.DB, baseLog *logger.Logger, repo repos.BookmarkRepo, articleRepo repos.ArticleRepo) BookmarkService {
	return &bookmarkService{
		db:          db,
		log:         baseLog.With("service", "BookmarkService"),
		repo:        repo,
		articleRepo: articleRepo,
	}
}

func (s *bookmarkService) Add(ctx context.Context, userID, articleID uuid.UUID) (*types.ArticleBookmark, error) {
	if userID == uuid.Nil || articleID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id and article id required", pkgerrors.ErrInvalidArgument)
	}

	found, err := s.articleRepo.GetByIDs(ctx, nil, []uuid.UUID{articleID})
	if err != nil {
		return nil, fmt.Errorf("checking article: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: article %s", pkgerrors.ErrNotFound, articleID)
	}

	bm := &types.ArticleBookmark{
		ID:           uuid.New(),
		UserID:       userID,
		ArticleID:    articleID,
		BookmarkedAt: time.Now().UTC(),
	}
	n, err := s.repo.CreateIgnoreDuplicates(ctx, nil, bm)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return bm, nil
	}

	// lost the race or already bookmarked: return the winning row
	existing, err := s.repo.GetByUserAndArticle(ctx, nil, userID, articleID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("bookmark insert reported conflict but no row found")
	}
	return existing, nil
}

func (s *bookmarkService) Remove(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || articleID == uuid.Nil {
		return false, fmt.Errorf("%w: user id and article id required", pkgerrors.ErrInvalidArgument)
	}
	return s.repo.DeleteByUserAndArticle(ctx, nil, userID, articleID)
}

func (s *bookmarkService) IsBookmarked(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	bm, err := s.repo.GetByUserAndArticle(ctx, nil, userID, articleID)
	if err != nil {
		return false, err
	}
	return bm != nil, nil
}

func (s *bookmarkService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.ArticleBookmark, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	return s.repo.ListForUser(ctx, nil, userID)
}
