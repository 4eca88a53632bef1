package recentview

import (
	"go-cart-api/internal/pkg/apperror"
	"net/http"
)

var (
	ErrInvalidItem = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid recently viewed item",
		http.StatusBadRequest,
	)

	ErrMissingSession = apperror.New(
		apperror.CodeUnauthorized,
		"Session not found",
		http.StatusUnauthorized,
	)
)
