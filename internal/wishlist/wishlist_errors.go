package wishlist

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

	ErrTogglePending = apperror.New(
		apperror.CodeConflict,
		"Previous wishlist change for this product is still in progress",
		http.StatusConflict,
	)

	ErrToggleFailed = apperror.New(
		apperror.CodeUpstreamFailed,
		"Wishlist change was not accepted, reverted",
		http.StatusBadGateway,
	)

	ErrLoginRequired = apperror.New(
		apperror.CodeUnauthorized,
		"Login required to use the wishlist",
		http.StatusUnauthorized,
	)

	ErrMissingSession = apperror.New(
		apperror.CodeUnauthorized,
		"Session not found",
		http.StatusUnauthorized,
	)
)
