package repos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

type ArticleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, articles []*types.Article) ([]*types.Article, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Article, error)
	List(ctx context.Context, tx *gorm.DB, limit int, category string) ([]*types.Article, error)
	ListByDate(ctx context.Context, tx *gorm.DB, day time.Time) ([]*types.Article, error)
	ListByExamRelevance(ctx context.Context, tx *gorm.DB, examID string) ([]*types.Article, error)
	ListPublishedSince(ctx context.Context, tx *gorm.DB, since time.Time, limit int, category string) ([]*types.Article, error)
	ListWithUserData(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int, category string) ([]*types.ArticleWithUserData, error)
}

type articleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArticleRepo(db *gorm.DB, baseLog *logger.Logger) ArticleRepo {
	return &articleRepo{db: db, log: baseLog.With("repo", "ArticleRepo")}
}

func (r *articleRepo) Create(ctx context.Context, tx *gorm.DB, articles []*types.Article) ([]*types.Article, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(articles) == 0 {
		return []*types.Article{}, nil
	}
	if err := t.WithContext(ctx).Create(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Article, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Article
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *articleRepo) List(ctx context.Context, tx *gorm.DB, limit int, category string) ([]*types.Article, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 {
		limit = 10
	}
	q := t.WithContext(ctx).Model(&types.Article{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []*types.Article
	if err := q.Order("published_date DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *articleRepo) ListByDate(ctx context.Context, tx *gorm.DB, day time.Time) ([]*types.Article, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	var out []*types.Article
	if err := t.WithContext(ctx).
		Where("published_date >= ? AND published_date < ?", start, end).
		Order("published_date DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *articleRepo) ListByExamRelevance(ctx context.Context, tx *gorm.DB, examID string) ([]*types.Article, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if examID == "" {
		return []*types.Article{}, nil
	}
	needle, err := json.Marshal([]string{examID})
	if err != nil {
		return nil, err
	}
	var out []*types.Article
	if err := t.WithContext(ctx).
		Where("exam_relevance @> ?::jsonb", string(needle)).
		Order("published_date DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *articleRepo) ListPublishedSince(ctx context.Context, tx *gorm.DB, since time.Time, limit int, category string) ([]*types.Article, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	q := t.WithContext(ctx).Model(&types.Article{}).Where("published_date >= ?", since)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []*types.Article
	if err := q.Order("published_date DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *articleRepo) ListWithUserData(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int, category string) ([]*types.ArticleWithUserData, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 {
		limit = 10
	}
	q := t.WithContext(ctx).Model(&types.Article{}).
		Select(`article.*,
			(b.id IS NOT NULL) AS is_bookmarked,
			(n.article_id IS NOT NULL) AS has_notes,
			COALESCE(ic.cnt, 0) AS user_interactions`).
		Joins(`LEFT JOIN article_bookmark b ON b.article_id = article.id AND b.user_id = ?`, userID).
		Joins(`LEFT JOIN (SELECT DISTINCT user_id, article_id FROM article_note) n ON n.article_id = article.id AND n.user_id = ?`, userID).
		Joins(`LEFT JOIN (SELECT article_id, COUNT(*) AS cnt FROM article_interaction WHERE user_id = ? GROUP BY article_id) ic ON ic.article_id = article.id`, userID)
	if category != "" {
		q = q.Where("article.category = ?", category)
	}
	var out []*types.ArticleWithUserData
	if err := q.Order("article.published_date DESC").Limit(limit).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
