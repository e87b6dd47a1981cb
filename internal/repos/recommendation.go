package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

type RecommendationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recs []*types.ArticleRecommendation) ([]*types.ArticleRecommendation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ArticleRecommendation, error)
	ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ArticleRecommendation, error)
	CountForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	SetViewed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cutoff time.Time) (int64, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return &recommendationRepo{db: db, log: baseLog.With("repo", "RecommendationRepo")}
}

func (r *recommendationRepo) Create(ctx context.Context, tx *gorm.DB, recs []*types.ArticleRecommendation) ([]*types.ArticleRecommendation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(recs) == 0 {
		return []*types.ArticleRecommendation{}, nil
	}
	if err := t.WithContext(ctx).Create(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recommendationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ArticleRecommendation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out types.ArticleRecommendation
	err := t.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *recommendationRepo) ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ArticleRecommendation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ArticleRecommendation
	if userID == uuid.Nil {
		return out, nil
	}
	if limit <= 0 {
		limit = 10
	}
	if err := t.WithContext(ctx).
		Preload("Article").
		Where("user_id = ?", userID).
		Order("score DESC, generated_at DESC, id ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recommendationRepo) CountForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.ArticleRecommendation{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *recommendationRepo) SetViewed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).
		Model(&types.ArticleRecommendation{}).
		Where("id = ?", id).
		Update("viewed", true).Error
}

func (r *recommendationRepo) DeleteOlderThan(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cutoff time.Time) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).
		Where("user_id = ? AND generated_at < ?", userID, cutoff).
		Delete(&types.ArticleRecommendation{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
