package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/common/middleware"
	"fitladder-backend/internal/features/profile/models"
	"fitladder-backend/internal/features/profile/service"
	"fitladder-backend/internal/features/score"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.RequireAuth())
	{
		profile.GET("/me", h.getMe)
		profile.PUT("", h.update)
	}
}

// UpdateProfileRequest is the generic partial-save payload. Omitted fields
// keep their stored values; the guarded fields keep their omitted/explicit
// distinction all the way into the patch.
type UpdateProfileRequest struct {
	Weight     *float64              `json:"weight,omitempty"`
	Age        *int                  `json:"age,omitempty"`
	Gender     *string               `json:"gender,omitempty" binding:"omitempty,oneof=male female"`
	Scores     *score.CategoryScores `json:"scores,omitempty"`
	IsVerified *bool                 `json:"is_verified,omitempty"`

	Subscription *struct {
		Status         *string `json:"status,omitempty"`
		IsEarlyAdopter *bool   `json:"is_early_adopter,omitempty"`
	} `json:"subscription,omitempty"`
}

// @Summary Get current user profile
// @Description Get or create the user record of the authenticated user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserRecord "User record"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /profile/me [get]
func (h *ProfileHandler) getMe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	record, err := h.service.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		middleware.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// @Summary Update user profile
// @Description Partial merge-save of the user record. Protected fields cannot be regressed by omission, and the verified flag can only be cleared, never set.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} models.UserRecord "Updated record"
// @Failure 400 {object} middleware.ErrorResponse "Invalid payload"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Guard violation or internal error"
// @Router /profile [put]
func (h *ProfileHandler) update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithAppError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	// Верифицированным делает только процесс верификации. Клиент может лишь
	// сбросить флаг явным false.
	if req.IsVerified != nil && *req.IsVerified {
		middleware.AbortWithAppError(c, apperrors.
			NewValidationError("is_verified", "the verified flag can only be granted through a verification review").
			WithUserID(userID))
		return
	}

	patch := &models.RecordPatch{
		Weight: req.Weight,
		Age:    req.Age,
		Scores: req.Scores,
	}
	if req.Gender != nil {
		gender := score.Gender(*req.Gender)
		patch.Gender = &gender
	}
	if req.IsVerified != nil {
		patch.IsVerified = models.Some(*req.IsVerified)
	}
	if req.Subscription != nil {
		patch.Subscription = &models.SubscriptionPatch{
			Status: req.Subscription.Status,
		}
		if req.Subscription.IsEarlyAdopter != nil {
			patch.Subscription.IsEarlyAdopter = models.Some(*req.Subscription.IsEarlyAdopter)
		}
	}

	record, err := h.service.Save(c.Request.Context(), userID, patch)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			middleware.AbortWithAppError(c, apperrors.NewUserNotFoundError(userID))
			return
		}
		middleware.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}
