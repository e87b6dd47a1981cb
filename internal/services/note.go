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

type NoteInput struct {
	NoteText    string  `json:"note_text"`
	Highlighted bool    `json:"highlighted"`
	Position    *string `json:"position,omitempty"`
}

type NoteService interface {
	Create(ctx context.Context, userID, articleID uuid.UUID, input NoteInput) (*types.ArticleNote, error)
	// Update and Delete distinguish "nothing there" (ErrNotFound) from
	// "not yours" (ErrForbidden); neither ever silently no-ops.
	Update(ctx context.Context, userID, noteID uuid.UUID, input NoteInput) (*types.ArticleNote, error)
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID, articleID *uuid.UUID) ([]*types.ArticleNote, error)
}

type noteService struct {
	db          *gorm.DB
	log         *logger.Logger
	repo        repos.NoteRepo
	articleRepo repos.ArticleRepo
}

func NewNoteService(db *gorm.DB, baseLog *logger.Logger, repo repos.NoteRepo, articleRepo repos.ArticleRepo) NoteService {
	return &noteService{
		db:          db,
		log:         baseLog.With("service", "NoteService"),
		repo:        repo,
		articleRepo: articleRepo,
	}
}

func (s *noteService) Create(ctx context.Context, userID, articleID uuid.UUID, input NoteInput) (*types.ArticleNote, error) {
	if userID == uuid.Nil || articleID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id and article id required", pkgerrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.NoteText) == "" {
		return nil, fmt.Errorf("%w: note text required", pkgerrors.ErrInvalidArgument)
	}

	found, err := s.articleRepo.GetByIDs(ctx, nil, []uuid.UUID{articleID})
	if err != nil {
		return nil, fmt.Errorf("checking article: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: article %s", pkgerrors.ErrNotFound, articleID)
	}

	now := time.Now().UTC()
	note := &types.ArticleNote{
		ID:          uuid.New(),
		UserID:      userID,
		ArticleID:   articleID,
		NoteText:    input.NoteText,
		Highlighted: input.Highlighted,
		Position:    input.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.repo.Create(ctx, nil, note)
}

func (s *noteService) Update(ctx context.Context, userID, noteID uuid.UUID, input NoteInput) (*types.ArticleNote, error) {
	if strings.TrimSpace(input.NoteText) == "" {
		return nil, fmt.Errorf("%w: note text required", pkgerrors.ErrInvalidArgument)
	}
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	note.NoteText = input.NoteText
	note.Highlighted = input.Highlighted
	note.Position = input.Position
	note.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, nil, note)
}

func (s *noteService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return err
	}
	return s.repo.DeleteByID(ctx, nil, note.ID)
}

func (s *noteService) ListForUser(ctx context.Context, userID uuid.UUID, articleID *uuid.UUID) ([]*types.ArticleNote, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	return s.repo.ListForUser(ctx, nil, userID, articleID)
}

func (s *noteService) getOwned(ctx context.Context, userID, noteID uuid.UUID) (*types.ArticleNote, error) {
	if userID == uuid.Nil || noteID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id and note id required", pkgerrors.ErrInvalidArgument)
	}
	note, err := s.repo.GetByID(ctx, nil, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: note %s", pkgerrors.ErrNotFound, noteID)
	}
	if note.UserID != userID {
		return nil, fmt.Errorf("%w: note %s", pkgerrors.ErrForbidden, noteID)
	}
	return note, nil
}
