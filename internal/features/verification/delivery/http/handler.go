package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/common/middleware"
	pmodels "fitladder-backend/internal/features/profile/models"
	"fitladder-backend/internal/features/verification/models"
	"fitladder-backend/internal/features/verification/service"
)

type VerificationHandler struct {
	service  service.VerificationService
	adminIDs []string
}

func NewVerificationHandler(service service.VerificationService, adminIDs []string) *VerificationHandler {
	return &VerificationHandler{
		service:  service,
		adminIDs: adminIDs,
	}
}

func (h *VerificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	verification := router.Group("/verification")
	verification.Use(middleware.RequireAuth())
	{
		verification.GET("/eligibility", h.eligibility)
		verification.POST("/requests", h.createRequest)
	}

	// Маршруты ревьюера
	admin := router.Group("/admin/verification")
	admin.Use(middleware.RequireAdmin(h.adminIDs))
	{
		admin.GET("/requests", h.listPending)
		admin.POST("/requests/:id/approve", h.approve)
		admin.POST("/requests/:id/reject", h.reject)
	}
}

// CreateRequestBody is the payload of a new verification request
type CreateRequestBody struct {
	SocialAccountType   string   `json:"social_account_type" binding:"required"`
	SocialAccountHandle string   `json:"social_account_handle" binding:"required"`
	VideoLink           string   `json:"video_link" binding:"required,url"`
	Description         string   `json:"description"`
	RequestedItems      []string `json:"requested_items"`
	TargetData          string   `json:"target_data"`
}

// RejectBody carries the reviewer's rejection reason
type RejectBody struct {
	Reason string `json:"reason" binding:"required"`
}

// @Summary Check verification eligibility
// @Description Report whether the user may file a verification request and why not
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Eligibility "Eligibility"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /verification/eligibility [get]
func (h *VerificationHandler) eligibility(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	eligibility, err := h.service.CanApply(c.Request.Context(), userID)
	if err != nil {
		middleware.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, eligibility)
}

// @Summary File a verification request
// @Description Consume the seal cost and create a human-reviewed verification request
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequestBody true "Request details"
// @Success 201 {object} models.Request "Created request"
// @Failure 400 {object} middleware.ErrorResponse "Invalid payload or nothing to verify"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 402 {object} middleware.ErrorResponse "Not enough seals"
// @Failure 409 {object} middleware.ErrorResponse "Pending request exists or already verified"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /verification/requests [post]
func (h *VerificationHandler) createRequest(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		middleware.AbortWithAppError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	request, err := h.service.CreateRequest(c.Request.Context(), userID, service.CreateInput{
		SocialAccount: models.SocialAccount{
			Type:   body.SocialAccountType,
			Handle: body.SocialAccountHandle,
		},
		VideoLink:      body.VideoLink,
		Description:    body.Description,
		RequestedItems: body.RequestedItems,
		TargetData:     body.TargetData,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyVerified):
			middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodeAlreadyVerified, "User is already verified"))
		case errors.Is(err, models.ErrPendingExists):
			middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodePendingRequest, "A pending request already exists"))
		case errors.Is(err, models.ErrCooldownActive):
			middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodeVerificationCooldown, "Post-rejection cooldown is still active"))
		case errors.Is(err, models.ErrNothingToVerify), errors.Is(err, models.ErrNoCompositeScore):
			middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodeNoScores, "Nothing to verify yet"))
		case errors.Is(err, pmodels.ErrUserNotFound):
			middleware.AbortWithAppError(c, apperrors.NewUserNotFoundError(userID))
		default:
			middleware.AbortWithAppError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, request)
}

// @Summary List pending verification requests
// @Description Reviewer queue of requests awaiting a decision
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max requests to return"
// @Success 200 {array} models.Request "Pending requests"
// @Failure 403 {object} middleware.ErrorResponse "Admin access required"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /admin/verification/requests [get]
func (h *VerificationHandler) listPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	requests, err := h.service.ListPending(c.Request.Context(), limit)
	if err != nil {
		middleware.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// @Summary Approve a verification request
// @Description Mark the request verified and stamp the verified fields onto the user record
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} models.Request "Updated request"
// @Failure 403 {object} middleware.ErrorResponse "Admin access required"
// @Failure 404 {object} middleware.ErrorResponse "Request not found"
// @Failure 409 {object} middleware.ErrorResponse "Request is not pending"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /admin/verification/requests/{id}/approve [post]
func (h *VerificationHandler) approve(c *gin.Context) {
	request, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// @Summary Reject a verification request
// @Description Mark the request rejected; the user enters the post-rejection cooldown
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body RejectBody true "Rejection reason"
// @Success 200 {object} models.Request "Updated request"
// @Failure 400 {object} middleware.ErrorResponse "Missing reason"
// @Failure 403 {object} middleware.ErrorResponse "Admin access required"
// @Failure 404 {object} middleware.ErrorResponse "Request not found"
// @Failure 409 {object} middleware.ErrorResponse "Request is not pending"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /admin/verification/requests/{id}/reject [post]
func (h *VerificationHandler) reject(c *gin.Context) {
	var body RejectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		middleware.AbortWithAppError(c, apperrors.NewValidationError("reason", err.Error()))
		return
	}

	request, err := h.service.Reject(c.Request.Context(), c.Param("id"), body.Reason)
	if err != nil {
		h.writeReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *VerificationHandler) writeReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrRequestNotFound):
		middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodeRequestNotFound, "Verification request not found"))
	case errors.Is(err, models.ErrNotPending):
		middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodeConflict, "Request is not pending"))
	default:
		middleware.AbortWithAppError(c, err)
	}
}
