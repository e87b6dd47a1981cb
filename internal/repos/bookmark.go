package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

type BookmarkRepo interface {
	// CreateIgnoreDuplicates inserts the bookmark unless the (user, article)
	// pair already has one. Returns the number of rows actually inserted.
	CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, bm *types.ArticleBookmark) (int, error)
	GetByUserAndArticle(ctx context.Context, tx *gorm.DB, userID, articleID uuid.UUID) (*types.ArticleBookmark, error)
	DeleteByUserAndArticle(ctx context.Context, tx *gorm.DB, userID, articleID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ArticleBookmark, error)
	ListArticleIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
}

type bookmarkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookmarkRepo(db *gorm.DB, baseLog *logger.Logger) BookmarkRepo {
	return &bookmarkRepo{db: db, log: baseLog.With("repo", "BookmarkRepo")}
}

func (r *bookmarkRepo) CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, bm *types.ArticleBookmark) (int, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if bm == nil {
		return 0, nil
	}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
			DoNothing: true,
		}).
		Create(bm)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *bookmarkRepo) GetByUserAndArticle(ctx context.Context, tx *gorm.DB, userID, articleID uuid.UUID) (*types.ArticleBookmark, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out types.ArticleBookmark
	err := t.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *bookmarkRepo) DeleteByUserAndArticle(ctx context.Context, tx *gorm.DB, userID, articleID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&types.ArticleBookmark{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *bookmarkRepo) ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ArticleBookmark, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ArticleBookmark
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Preload("Article").
		Where("user_id = ?", userID).
		Order("bookmarked_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bookmarkRepo) ListArticleIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if userID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.ArticleBookmark{}).
		Where("user_id = ?", userID).
		Pluck("article_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
