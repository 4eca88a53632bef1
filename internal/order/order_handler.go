package order

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-cart-api/internal/middleware"
	"go-cart-api/internal/pkg/apperror"
	"go-cart-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

// NewHandler builds the order handler. rdb may be nil when checkout runs
// without the idempotency middleware.
func NewHandler(svc Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Handler{service: svc, rdb: rdb, logger: l.Named("order.handler")}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

// Checkout places an order from the selected cart lines.
// POST /orders/checkout
func (h *Handler) Checkout(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	ctx := c.Request.Context()

	if lockKey := c.GetString(middleware.ContextIdempotencyLockKey); lockKey != "" && h.rdb != nil {
		defer h.rdb.Del(ctx, lockKey)
	}

	var req CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("http checkout validation failed", zap.Error(err))
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid request body", err.Error())
			return
		}
	}

	res, err := h.service.Checkout(ctx, sessionID, req)
	if err != nil {
		h.logger.Warn("http checkout failed", zap.String("session_id", sessionID), zap.Error(err))
		writeError(c, err)
		return
	}

	// the replayed body is byte-for-byte the one sent now
	body, err := json.Marshal(response.APIResponse{
		Success:   true,
		Data:      res,
		RequestID: c.GetString(middleware.RequestIDHeader),
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		response.Success(c, http.StatusCreated, res, nil)
		return
	}

	if cacheKey := c.GetString(middleware.ContextIdempotencyCacheKey); cacheKey != "" && h.rdb != nil {
		if err := middleware.StoreIdempotentResponse(ctx, h.rdb, cacheKey, http.StatusCreated, body, idempotencyCacheTTL); err != nil {
			h.logger.Warn("cache checkout response failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	c.Data(http.StatusCreated, "application/json; charset=utf-8", body)
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	orders, total, err := h.service.List(c.Request.Context(), middleware.SessionID(c), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders, response.NewPaginationMeta(total, page, limit))
}

func (h *Handler) Detail(c *gin.Context) {
	res, err := h.service.Detail(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
