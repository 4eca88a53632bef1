package discount

import (
	"go-cart-api/internal/pkg/apperror"
	"net/http"
)

var (
	ErrUnknownType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown discount type",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidRecord = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid discount record",
		http.StatusUnprocessableEntity,
	)

	ErrDiscountExceedsPrice = apperror.New(
		apperror.CodeInvalidInput,
		"Flat discount exceeds product price",
		http.StatusUnprocessableEntity,
	)

	ErrDiscountLoadFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to load discounts",
		http.StatusInternalServerError,
	)
)
