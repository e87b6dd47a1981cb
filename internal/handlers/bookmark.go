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

type BookmarkHandler struct {
	log            *logger.Logger
	bookmarkSvc    services.BookmarkService
	interactionSvc services.InteractionService
}

func NewBookmarkHandler(log *logger.Logger, bookmarkSvc services.BookmarkService, interactionSvc services.InteractionService) *BookmarkHandler {
	return &BookmarkHandler{
		log:            log.With("handler", "BookmarkHandler"),
		bookmarkSvc:    bookmarkSvc,
		interactionSvc: interactionSvc,
	}
}

// POST /api/articles/:id/bookmark
func (h *BookmarkHandler) Add(c *gin.Context) {
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

	bm, err := h.bookmarkSvc.Add(c.Request.Context(), rd.UserID, articleID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if _, err := h.interactionSvc.Record(c.Request.Context(), rd.UserID, articleID, types.InteractionBookmarkAdd, nil); err != nil {
		h.log.Warn("recording bookmark_add event failed", "error", err, "article_id", articleID)
	}
	RespondOK(c, gin.H{"bookmark": bm})
}

// DELETE /api/articles/:id/bookmark
// The bookmark_remove event fires only when a row was actually deleted, so
// repeated deletes do not inflate the activity history.
func (h *BookmarkHandler) Remove(c *gin.Context) {
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

	removed, err := h.bookmarkSvc.Remove(c.Request.Context(), rd.UserID, articleID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if removed {
		if _, err := h.interactionSvc.Record(c.Request.Context(), rd.UserID, articleID, types.InteractionBookmarkRemove, nil); err != nil {
			h.log.Warn("recording bookmark_remove event failed", "error", err, "article_id", articleID)
		}
	}
	RespondOK(c, gin.H{"removed": removed})
}

// GET /api/articles/bookmarks/my
func (h *BookmarkHandler) ListMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	bookmarks, err := h.bookmarkSvc.ListForUser(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"bookmarks": bookmarks})
}
