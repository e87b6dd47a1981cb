package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

// ArticleDetail is the single-article read model: the article plus the
// caller's bookmark state and notes on it.
type ArticleDetail struct {
	Article      *types.Article       `json:"article"`
	IsBookmarked bool                 `json:"is_bookmarked"`
	Notes        []*types.ArticleNote `json:"notes"`
}

type ArticleService interface {
	Create(ctx context.Context, articles []*types.Article) ([]*types.Article, error)
	List(ctx context.Context, limit int, category string) ([]*types.Article, error)
	ListByDate(ctx context.Context, day time.Time) ([]*types.Article, error)
	// ListWithUserData decorates each article with the caller's bookmark,
	// note and interaction state in a single query.
	ListWithUserData(ctx context.Context, userID uuid.UUID, limit int, category string) ([]*types.ArticleWithUserData, error)
	GetForUser(ctx context.Context, userID, articleID uuid.UUID) (*ArticleDetail, error)
}

type articleService struct {
	db           *gorm.DB
	log          *logger.Logger
	repo         repos.ArticleRepo
	bookmarkRepo repos.BookmarkRepo
	noteRepo     repos.NoteRepo
}

func NewArticleService(
	db *gorm.DB,
	baseLog *logger.Logger,
	repo repos.ArticleRepo,
	bookmarkRepo repos.BookmarkRepo,
	noteRepo repos.NoteRepo,
) ArticleService {
	return &articleService{
		db:           db,
		log:          baseLog.With("service", "ArticleService"),
		repo:         repo,
		bookmarkRepo: bookmarkRepo,
		noteRepo:     noteRepo,
	}
}

func (s *articleService) Create(ctx context.Context, articles []*types.Article) ([]*types.Article, error) {
	for _, a := range articles {
		if strings.TrimSpace(a.Title) == "" {
			return nil, fmt.Errorf("%w: article title required", pkgerrors.ErrInvalidArgument)
		}
		if a.Importance == "" {
			a.Importance = types.ImportanceMedium
		}
	}
	return s.repo.Create(ctx, nil, articles)
}

func (s *articleService) List(ctx context.Context, limit int, category string) ([]*types.Article, error) {
	return s.repo.List(ctx, nil, limit, category)
}

func (s *articleService) ListByDate(ctx context.Context, day time.Time) ([]*types.Article, error) {
	return s.repo.ListByDate(ctx, nil, day)
}

func (s *articleService) ListWithUserData(ctx context.Context, userID uuid.UUID, limit int, category string) ([]*types.ArticleWithUserData, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	return s.repo.ListWithUserData(ctx, nil, userID, limit, category)
}

func (s *articleService) GetForUser(ctx context.Context, userID, articleID uuid.UUID) (*ArticleDetail, error) {
	if userID == uuid.Nil || articleID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id and article id required", pkgerrors.ErrInvalidArgument)
	}
	articles, err := s.repo.GetByIDs(ctx, nil, []uuid.UUID{articleID})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("%w: article %s", pkgerrors.ErrNotFound, articleID)
	}
	bm, err := s.bookmarkRepo.GetByUserAndArticle(ctx, nil, userID, articleID)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListForUser(ctx, nil, userID, &articleID)
	if err != nil {
		return nil, err
	}
	return &ArticleDetail{
		Article:      articles[0],
		IsBookmarked: bm != nil,
		Notes:        notes,
	}, nil
}
