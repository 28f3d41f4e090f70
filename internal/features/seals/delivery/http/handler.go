package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/common/middleware"
	pmodels "fitladder-backend/internal/features/profile/models"
	profileservice "fitladder-backend/internal/features/profile/service"
	"fitladder-backend/internal/features/seals/service"
)

type SealHandler struct {
	service  service.SealService
	profiles profileservice.ProfileService
}

func NewSealHandler(service service.SealService, profiles profileservice.ProfileService) *SealHandler {
	return &SealHandler{
		service:  service,
		profiles: profiles,
	}
}

func (h *SealHandler) RegisterRoutes(router *gin.RouterGroup) {
	seals := router.Group("/seals")
	seals.Use(middleware.RequireAuth())
	{
		seals.GET("/balance", h.balance)
		seals.GET("/quote", h.quote)
	}
}

// BalanceResponse is the current split of the two seal buckets
type BalanceResponse struct {
	MonthlySeals   int  `json:"monthly_seals"`
	HonorSeals     int  `json:"honor_seals"`
	IsEarlyAdopter bool `json:"is_early_adopter"`
}

// @Summary Get seal balances
// @Description Current monthly and honor seal balances. Refreshes the monthly quota when due.
// @Tags seals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BalanceResponse "Balances"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /seals/balance [get]
func (h *SealHandler) balance(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	record, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pmodels.ErrUserNotFound) {
			middleware.AbortWithAppError(c, apperrors.NewUserNotFoundError(userID))
			return
		}
		middleware.AbortWithAppError(c, err)
		return
	}

	// Месячная квота начисляется лениво при обращении к балансу
	record, err = h.service.ResetMonthly(c.Request.Context(), record)
	if err != nil {
		middleware.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		MonthlySeals:   record.MonthlySeals,
		HonorSeals:     record.HonorSeals,
		IsEarlyAdopter: record.Subscription.IsEarlyAdopter,
	})
}

// @Summary Quote verification cost
// @Description Classify the user's current scores into a verification tier and its seal cost
// @Tags seals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Quote "Seal quote"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /seals/quote [get]
func (h *SealHandler) quote(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	record, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pmodels.ErrUserNotFound) {
			middleware.AbortWithAppError(c, apperrors.NewUserNotFoundError(userID))
			return
		}
		middleware.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.Quote(record.LadderScore, record.Scores))
}
