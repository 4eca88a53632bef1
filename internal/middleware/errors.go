package middleware

import (
	"go-cart-api/internal/pkg/apperror"
	"go-cart-api/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or expired token",
		http.StatusUnauthorized,
	)

	ErrTooManyRequests = apperror.New(
		apperror.CodeTooManyRequests,
		"Too many requests, slow down",
		http.StatusTooManyRequests,
	)

	ErrDuplicateRequest = apperror.New(
		apperror.CodeConflict,
		"Request with this idempotency key is already in progress",
		http.StatusConflict,
	)

	ErrMissingIdempotencyKey = apperror.New(
		apperror.CodeInvalidInput,
		"Idempotency-Key header is required",
		http.StatusBadRequest,
	)
)

func abort(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}
