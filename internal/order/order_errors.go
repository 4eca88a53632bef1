package order

import (
	"go-cart-api/internal/pkg/apperror"
	"net/http"
)

var (
	ErrNothingSelected = apperror.New(
		apperror.CodeInvalidInput,
		"Select at least one item to check out",
		http.StatusBadRequest,
	)

	ErrInvalidOrderID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid order ID",
		http.StatusBadRequest,
	)

	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order not found",
		http.StatusNotFound,
	)

	ErrOrderFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to place order",
		http.StatusInternalServerError,
	)

	ErrMissingSession = apperror.New(
		apperror.CodeUnauthorized,
		"Session not found",
		http.StatusUnauthorized,
	)
)
