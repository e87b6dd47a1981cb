package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/requestdata"
	"github.com/prepmitra/currentaffairs-backend/internal/services"
)

const defaultPruneAgeDays = 30

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

// GET /api/recommendations?limit=
func (h *RecommendationHandler) Feed(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: limit must be a non-negative integer", pkgerrors.ErrInvalidArgument))
			return
		}
		limit = parsed
	}
	recs, err := h.recSvc.Feed(c.Request.Context(), rd.UserID, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"recommendations": recs})
}

// POST /api/recommendations/generate
func (h *RecommendationHandler) Generate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	recs, err := h.recSvc.Generate(c.Request.Context(), rd.UserID, 0)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"recommendations": recs})
}

// POST /api/recommendations/:id/viewed
func (h *RecommendationHandler) MarkViewed(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	recID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: invalid recommendation id", pkgerrors.ErrInvalidArgument))
		return
	}
	rec, err := h.recSvc.MarkViewed(c.Request.Context(), rd.UserID, recID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"recommendation": rec})
}

// DELETE /api/recommendations/stale?olderThanDays=
func (h *RecommendationHandler) PruneStale(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	days := defaultPruneAgeDays
	if v := c.Query("olderThanDays"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: olderThanDays must be a positive integer", pkgerrors.ErrInvalidArgument))
			return
		}
		days = parsed
	}
	n, err := h.recSvc.PruneOlderThan(c.Request.Context(), rd.UserID, time.Duration(days)*24*time.Hour)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"pruned": n})
}
