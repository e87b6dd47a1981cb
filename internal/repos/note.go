package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

type NoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, note *types.ArticleNote) (*types.ArticleNote, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ArticleNote, error)
	Update(ctx context.Context, tx *gorm.DB, note *types.ArticleNote) (*types.ArticleNote, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, articleID *uuid.UUID) ([]*types.ArticleNote, error)
	ListArticleIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return &noteRepo{db: db, log: baseLog.With("repo", "NoteRepo")}
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, note *types.ArticleNote) (*types.ArticleNote, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if note == nil {
		return nil, nil
	}
	if err := t.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ArticleNote, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out types.ArticleNote
	err := t.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *noteRepo) Update(ctx context.Context, tx *gorm.DB, note *types.ArticleNote) (*types.ArticleNote, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if note == nil {
		return nil, nil
	}
	if err := t.WithContext(ctx).Save(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&types.ArticleNote{}).Error
}

func (r *noteRepo) ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, articleID *uuid.UUID) ([]*types.ArticleNote, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ArticleNote
	if userID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).Where("user_id = ?", userID)
	if articleID != nil && *articleID != uuid.Nil {
		q = q.Where("article_id = ?", *articleID)
	}
	if err := q.Order("updated_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) ListArticleIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if userID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.ArticleNote{}).
		Distinct("article_id").
		Where("user_id = ?", userID).
		Pluck("article_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
