package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

// CategoryCount aggregates a user's interaction volume per article category.
type CategoryCount struct {
	Category string
	Count    int64
}

// InteractionRepo is append-only: there are deliberately no update or delete
// methods on this interface.
type InteractionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.ArticleInteraction) ([]*types.ArticleInteraction, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, articleID *uuid.UUID) ([]*types.ArticleInteraction, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountsByCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]CategoryCount, error)
}

type interactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, baseLog *logger.Logger) InteractionRepo {
	return &interactionRepo{db: db, log: baseLog.With("repo", "InteractionRepo")}
}

func (r *interactionRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.ArticleInteraction) ([]*types.ArticleInteraction, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(events) == 0 {
		return []*types.ArticleInteraction{}, nil
	}
	if err := t.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *interactionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, articleID *uuid.UUID) ([]*types.ArticleInteraction, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ArticleInteraction
	if userID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).Where("user_id = ?", userID)
	if articleID != nil && *articleID != uuid.Nil {
		q = q.Where("article_id = ?", *articleID)
	}
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *interactionRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.ArticleInteraction{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *interactionRepo) CountsByCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]CategoryCount, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []CategoryCount
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.ArticleInteraction{}).
		Select("article.category AS category, COUNT(*) AS count").
		Joins("JOIN article ON article.id = article_interaction.article_id").
		Where("article_interaction.user_id = ?", userID).
		Group("article.category").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
