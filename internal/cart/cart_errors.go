package cart

import (
	"go-cart-api/internal/pkg/apperror"
	"net/http"
)

var (
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product ID",
		http.StatusBadRequest,
	)

	ErrInvalidQty = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity must be between 1 and 999",
		http.StatusBadRequest,
	)

	ErrInvalidQtyChange = apperror.New(
		apperror.CodeInvalidInput,
		"Provide either delta or value",
		http.StatusBadRequest,
	)

	ErrInvalidItem = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid cart item",
		http.StatusBadRequest,
	)

	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Item not found in cart",
		http.StatusNotFound,
	)

	ErrMissingSession = apperror.New(
		apperror.CodeUnauthorized,
		"Session not found",
		http.StatusUnauthorized,
	)
)
