package wishlist

import (
	"go-cart-api/internal/middleware"
	"go-cart-api/internal/pkg/apperror"
	"go-cart-api/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(svc Service, logger ...*zap.Logger) *Handler {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("wishlist.handler")
	}
	return &Handler{service: svc, logger: l}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

// List returns the liked products with their toggle state.
// GET /wishlist
func (h *Handler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// Toggle likes or unlikes a product.
// POST /wishlist/:productId/toggle
func (h *Handler) Toggle(c *gin.Context) {
	if c.GetString(middleware.ContextUserID) == "" {
		writeError(c, ErrLoginRequired)
		return
	}

	var req ToggleRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid request body", err.Error())
			return
		}
	}

	ctx := c.Request.Context()
	if token, err := c.Cookie(middleware.AccessTokenCookie); err == nil {
		ctx = WithAccessToken(ctx, token)
	}

	res, err := h.service.Toggle(ctx, middleware.SessionID(c), c.Param("productId"), req)
	if err != nil {
		h.logger.Warn("http wishlist toggle failed",
			zap.String("product_id", c.Param("productId")),
			zap.Error(err),
		)
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, res)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// Sync replaces the local wishlist with the server's copy.
// PUT /wishlist
func (h *Handler) Sync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid request body", err.Error())
		return
	}

	res, err := h.service.Sync(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
