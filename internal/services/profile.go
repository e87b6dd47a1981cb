package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

// ProfileService reads and upserts exam profiles. The recommendation
// generator only ever reads; writes come from ingestion and seeding.
type ProfileService interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	Upsert(ctx context.Context, profile *types.UserProfile) (*types.UserProfile, error)
}

type profileService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.UserProfileRepo
}

func NewProfileService(db *gorm.DB, baseLog *logger.Logger, repo repos.UserProfileRepo) ProfileService {
	return &profileService{
		db:   db,
		log:  baseLog.With("service", "ProfileService"),
		repo: repo,
	}
}

func (s *profileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	profile, err := s.repo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile for user %s", pkgerrors.ErrNotFound, userID)
	}
	return profile, nil
}

func (s *profileService) Upsert(ctx context.Context, profile *types.UserProfile) (*types.UserProfile, error) {
	if profile == nil || profile.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(profile.TargetExam) == "" {
		return nil, fmt.Errorf("%w: target exam required", pkgerrors.ErrInvalidArgument)
	}
	return s.repo.Upsert(ctx, nil, profile)
}
