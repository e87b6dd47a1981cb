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
)

type InteractionHandler struct {
	log            *logger.Logger
	interactionSvc services.InteractionService
}

func NewInteractionHandler(log *logger.Logger, interactionSvc services.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		log:            log.With("handler", "InteractionHandler"),
		interactionSvc: interactionSvc,
	}
}

// GET /api/interactions?articleId=
func (h *InteractionHandler) ListMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	var articleID *uuid.UUID
	if v := c.Query("articleId"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: invalid article id", pkgerrors.ErrInvalidArgument))
			return
		}
		articleID = &parsed
	}
	events, err := h.interactionSvc.ListByUser(c.Request.Context(), rd.UserID, articleID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"interactions": events})
}

// GET /api/interactions/summary
func (h *InteractionHandler) Summary(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	summary, err := h.interactionSvc.ActivitySummary(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, summary)
}
