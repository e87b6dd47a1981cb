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
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

type ArticleHandler struct {
	log            *logger.Logger
	articleSvc     services.ArticleService
	interactionSvc services.InteractionService
}

func NewArticleHandler(log *logger.Logger, articleSvc services.ArticleService, interactionSvc services.InteractionService) *ArticleHandler {
	return &ArticleHandler{
		log:            log.With("handler", "ArticleHandler"),
		articleSvc:     articleSvc,
		interactionSvc: interactionSvc,
	}
}

// GET /api/articles?limit=&category=&date=
func (h *ArticleHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}

	if dateStr := c.Query("date"); dateStr != "" {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: date must be YYYY-MM-DD", pkgerrors.ErrInvalidArgument))
			return
		}
		articles, err := h.articleSvc.ListByDate(c.Request.Context(), day)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, gin.H{"articles": articles})
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
	articles, err := h.articleSvc.ListWithUserData(c.Request.Context(), rd.UserID, limit, c.Query("category"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"articles": articles})
}

// GET /api/articles/:id
// Reading the detail view is an engagement signal: the handler records a
// view event after a successful read. A failed event write does not fail
// the read.
func (h *ArticleHandler) Get(c *gin.Context) {
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

	detail, err := h.articleSvc.GetForUser(c.Request.Context(), rd.UserID, articleID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if _, err := h.interactionSvc.Record(c.Request.Context(), rd.UserID, articleID, types.InteractionView, nil); err != nil {
		h.log.Warn("recording view event failed", "error", err, "article_id", articleID)
	}
	RespondOK(c, detail)
}
