package pricing

import (
	"go-cart-api/internal/middleware"
	"go-cart-api/internal/pkg/apperror"
	"go-cart-api/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// Quote returns the totals of the current selection.
// GET /cart/quote
func (h *Handler) Quote(c *gin.Context) {
	res, err := h.service.Quote(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
