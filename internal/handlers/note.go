package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/requestdata"
	"github.com/prepmitra/currentaffairs-backend/internal/services"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

type NoteHandler struct {
	log            *logger.Logger
	noteSvc        services.NoteService
	interactionSvc services.InteractionService
}

func NewNoteHandler(log *logger.Logger, noteSvc services.NoteService, interactionSvc services.InteractionService) *NoteHandler {
	return &NoteHandler{
		log:            log.With("handler", "NoteHandler"),
		noteSvc:        noteSvc,
		interactionSvc: interactionSvc,
	}
}

// POST /api/articles/:id/notes
func (h *NoteHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: invalid article id", pkgerrors.ErrInvalidArgument))
		return
	}
	var input services.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}

	note, err := h.noteSvc.Create(c.Request.Context(), rd.UserID, articleID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if _, err := h.interactionSvc.Record(c.Request.Context(), rd.UserID, articleID, types.InteractionNoteCreated, nil); err != nil {
		h.log.Warn("recording note_created event failed", "error", err, "article_id", articleID)
	}
	RespondOK(c, gin.H{"note": note})
}

// GET /api/articles/:id/notes
func (h *NoteHandler) ListForArticle(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: invalid article id", pkgerrors.ErrInvalidArgument))
		return
	}
	notes, err := h.noteSvc.ListForUser(c.Request.Context(), rd.UserID, &articleID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"notes": notes})
}

// PUT /api/notes/:noteId
func (h *NoteHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: invalid note id", pkgerrors.ErrInvalidArgument))
		return
	}
	var input services.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}

	note, err := h.noteSvc.Update(c.Request.Context(), rd.UserID, noteID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"note": note})
}

// DELETE /api/notes/:noteId
func (h *NoteHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: invalid note id", pkgerrors.ErrInvalidArgument))
		return
	}
	if err := h.noteSvc.Delete(c.Request.Context(), rd.UserID, noteID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
