package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/common/logger"
)

// ErrorHandler middleware для обработки паник
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := getRequestID(c)

		// Логируем панику
		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithRequestID(requestID).
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		sendErrorResponse(c, appErr)
	})
}

// RequestID middleware для добавления ID запроса
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
}

func getRequestID(c *gin.Context) string {
	if v, exists := c.Get("request_id"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// AbortWithAppError завершает запрос типизированной ошибкой. Ошибки других
// типов оборачиваются во внутреннюю AppError.
func AbortWithAppError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "Internal server error")
	}
	if appErr.RequestID == "" {
		appErr.WithRequestID(getRequestID(c))
	}

	sendErrorResponse(c, appErr)
}

func sendErrorResponse(c *gin.Context, appErr *errors.AppError) {
	status := http.StatusInternalServerError
	switch {
	case appErr.IsNotFound():
		status = http.StatusNotFound
	case appErr.IsValidation():
		status = http.StatusBadRequest
	case appErr.Code == errors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case appErr.Code == errors.ErrCodeForbidden:
		status = http.StatusForbidden
	case appErr.Code == errors.ErrCodeSubmissionLimit, appErr.Code == errors.ErrCodeTooManyRequests:
		status = http.StatusTooManyRequests
	case appErr.Code == errors.ErrCodeConflict, appErr.Code == errors.ErrCodePendingRequest,
		appErr.Code == errors.ErrCodeAlreadyVerified, appErr.Code == errors.ErrCodeVerificationCooldown:
		status = http.StatusConflict
	case appErr.Code == errors.ErrCodeInsufficientSeals:
		status = http.StatusPaymentRequired
	case appErr.Code == errors.ErrCodeBadRequest:
		status = http.StatusBadRequest
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
	})
}
