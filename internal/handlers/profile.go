package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/requestdata"
	"github.com/prepmitra/currentaffairs-backend/internal/services"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

type ProfileHandler struct {
	log        *logger.Logger
	profileSvc services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profileSvc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		log:        log.With("handler", "ProfileHandler"),
		profileSvc: profileSvc,
	}
}

// GET /api/profile
func (h *ProfileHandler) GetMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	profile, err := h.profileSvc.GetByUserID(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}

type profileUpsertRequest struct {
	TargetExam     string         `json:"target_exam"`
	StrongSubjects []string       `json:"strong_subjects"`
	WeakSubjects   []string       `json:"weak_subjects"`
	Preferences    map[string]any `json:"preferences"`
}

// PUT /api/profile
func (h *ProfileHandler) Upsert(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}
	var req profileUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}

	profile := &types.UserProfile{
		UserID:     rd.UserID,
		TargetExam: req.TargetExam,
	}
	var err error
	if profile.StrongSubjects, err = marshalJSONField(req.StrongSubjects); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if profile.WeakSubjects, err = marshalJSONField(req.WeakSubjects); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if profile.Preferences, err = marshalJSONField(req.Preferences); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	saved, err := h.profileSvc.Upsert(c.Request.Context(), profile)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": saved})
}

func marshalJSONField(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: field not serializable", pkgerrors.ErrInvalidArgument)
	}
	return datatypes.JSON(b), nil
}
