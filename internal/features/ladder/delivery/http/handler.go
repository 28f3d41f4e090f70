package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/common/middleware"
	"fitladder-backend/internal/features/ladder/models"
	"fitladder-backend/internal/features/ladder/service"
	pmodels "fitladder-backend/internal/features/profile/models"
	"fitladder-backend/internal/features/score"
)

type LadderHandler struct {
	service service.LadderService
}

func NewLadderHandler(service service.LadderService) *LadderHandler {
	return &LadderHandler{
		service: service,
	}
}

func (h *LadderHandler) RegisterRoutes(router *gin.RouterGroup) {
	ladder := router.Group("/ladder")
	ladder.Use(middleware.RequireAuth())
	{
		ladder.POST("/submit", h.submit)
		ladder.GET("/limit", h.checkLimit)
	}
}

// @Summary Submit score to the ladder
// @Description Aggregate the category scores, apply the extension policy and merge-write the result
// @Tags ladder
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SubmitResult "Submission result"
// @Failure 400 {object} middleware.ErrorResponse "No scores to aggregate"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 409 {object} middleware.ErrorResponse "Submission already in progress"
// @Failure 429 {object} middleware.ErrorResponse "Daily limit reached"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /ladder/submit [post]
func (h *LadderHandler) submit(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	result, err := h.service.ConfirmSubmit(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSubmissionInProgress):
			middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodeConflict, "Submission already in progress"))
		case errors.Is(err, score.ErrNoScores):
			middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodeNoScores, "At least one category score is required"))
		case errors.Is(err, pmodels.ErrUserNotFound):
			middleware.AbortWithAppError(c, apperrors.NewUserNotFoundError(userID))
		default:
			middleware.AbortWithAppError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Check submission limit
// @Description Pre-flight check of the daily submission quota
// @Tags ladder
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LimitCheck "Limit state"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /ladder/limit [get]
func (h *LadderHandler) checkLimit(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	check, err := h.service.CheckLimit(c.Request.Context(), userID)
	if err != nil {
		middleware.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}
