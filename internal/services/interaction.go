package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

// ActivitySummary aggregates a user's interaction history for the
// recommendation generator and for profile dashboards.
type ActivitySummary struct {
	TotalEvents      int64            `json:"total_events"`
	EventsByCategory map[string]int64 `json:"events_by_category"`
}

type InteractionService interface {
	// Record appends exactly one event. Events reference an existing
	// article: recording against an unknown article fails with ErrNotFound
	// rather than creating an orphaned row.
	Record(ctx context.Context, userID, articleID uuid.UUID, interactionType string, metadata map[string]any) (*types.ArticleInteraction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, articleID *uuid.UUID) ([]*types.ArticleInteraction, error)
	ActivitySummary(ctx context.Context, userID uuid.UUID) (*ActivitySummary, error)
}

type interactionService struct {
	db          *gorm.DB
	log         *logger.Logger
	repo        repos.InteractionRepo
	articleRepo repos.ArticleRepo
}

func NewInteractionService(db *gorm.DB, baseLog *logger.Logger, repo repos.InteractionRepo, articleRepo repos.ArticleRepo) InteractionService {
	return &interactionService{
		db:          db,
		log:         baseLog.With("service", "InteractionService"),
		repo:        repo,
		articleRepo: articleRepo,
	}
}

func (s *interactionService) Record(ctx context.Context, userID, articleID uuid.UUID, interactionType string, metadata map[string]any) (*types.ArticleInteraction, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	if articleID == uuid.Nil {
		return nil, fmt.Errorf("%w: article id required", pkgerrors.ErrInvalidArgument)
	}
	if !types.IsValidInteractionType(interactionType) {
		return nil, fmt.Errorf("%w: unknown interaction type %q", pkgerrors.ErrInvalidArgument, interactionType)
	}

	found, err := s.articleRepo.GetByIDs(ctx, nil, []uuid.UUID{articleID})
	if err != nil {
		return nil, fmt.Errorf("checking article: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: article %s", pkgerrors.ErrNotFound, articleID)
	}

	if metadata == nil {
		metadata = map[string]any{}
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata not serializable", pkgerrors.ErrInvalidArgument)
	}

	row := &types.ArticleInteraction{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: articleID,
		Type:      interactionType,
		Metadata:  datatypes.JSON(b),
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, nil, []*types.ArticleInteraction{row})
	if err != nil {
		s.log.Warn("interaction record failed", "error", err, "type", interactionType)
		return nil, err
	}
	return created[0], nil
}

func (s *interactionService) ListByUser(ctx context.Context, userID uuid.UUID, articleID *uuid.UUID) ([]*types.ArticleInteraction, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	return s.repo.ListByUser(ctx, nil, userID, articleID)
}

func (s *interactionService) ActivitySummary(ctx context.Context, userID uuid.UUID) (*ActivitySummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	total, err := s.repo.CountByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountsByCategory(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	byCat := make(map[string]int64, len(counts))
	for _, c := range counts {
		byCat[c.Category] = c.Count
	}
	return &ActivitySummary{TotalEvents: total, EventsByCategory: byCat}, nil
}
