package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/secaware-api/internal/pkg/errors"
)

// userIDFromContext извлекает идентификатор пользователя,
// положенный в контекст middleware аутентификации
func userIDFromContext(c *gin.Context) (uint, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// respondError переводит ошибку сервисного слоя в HTTP-ответ.
// Текст ответа берется из самой ошибки, внутренние ошибки
// наружу не раскрываются.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidSubmission):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "bad_request"})
	case errors.Is(err, apperrors.ErrInvalidCredential), errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrAccountLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "account_locked"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	case errors.Is(err, apperrors.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error(), "error_type": "rate_limited"})
	case errors.Is(err, apperrors.ErrGeneration), errors.Is(err, apperrors.ErrParse):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "error_type": "generation_failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal"})
	}
}
