package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/requestdata"
	"github.com/prepmitra/currentaffairs-backend/internal/services"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

type QuizHandler struct {
	log            *logger.Logger
	quizSvc        services.QuizService
	interactionSvc services.InteractionService
}

func NewQuizHandler(log *logger.Logger, quizSvc services.QuizService, interactionSvc services.InteractionService) *QuizHandler {
	return &QuizHandler{
		log:            log.With("handler", "QuizHandler"),
		quizSvc:        quizSvc,
		interactionSvc: interactionSvc,
	}
}

// POST /api/quiz/generate
func (h *QuizHandler) Generate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	var input services.QuizGenerationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}
	quiz, err := h.quizSvc.Generate(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	meta := map[string]any{"timeframe": quiz.Timeframe, "questions": len(quiz.Questions)}
	for _, articleID := range quiz.SourceArticleIDs {
		if _, err := h.interactionSvc.Record(c.Request.Context(), rd.UserID, articleID, types.InteractionQuizGenerated, meta); err != nil {
			h.log.Warn("recording quiz_generated event failed", "error", err, "article_id", articleID)
		}
	}
	RespondOK(c, quiz)
}
