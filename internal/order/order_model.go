package order

import (
	"time"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/pkg/money"
	"go-cart-api/internal/pricing"
)

const (
	StatusPending = "PENDING"

	AggregateType       = "ORDER"
	EventClearCartItems = "CLEAR_CART_ITEMS"
	shippingLineID      = "SHIPPING"
	shippingLineName    = "Shipping Fee"
)

type Record struct {
	ID          string         `json:"id"`
	OrderNumber string         `json:"orderNumber"`
	Status      string         `json:"status"`
	Items       []pricing.Line `json:"items"`
	Totals      Totals         `json:"totals"`
	Note        string         `json:"note,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type Totals struct {
	Subtotal      money.Money `json:"subtotal"`
	DiscountTotal money.Money `json:"discountTotal"`
	Shipping      money.Money `json:"shipping"`
	Total         money.Money `json:"total"`
}

// PaymentItem is one entry of the item list handed to the payment gateway.
// Price times Quantity over all items adds up to the gross amount.
type PaymentItem struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    money.Money `json:"price"`
	Quantity int         `json:"quantity"`
}

type PaymentRequest struct {
	OrderID     string        `json:"orderId"`
	GrossAmount money.Money   `json:"grossAmount"`
	Items       []PaymentItem `json:"items"`
}

// ClearCartPayload is the outbox payload that tells the consumer which lines
// left the cart with this order.
type ClearCartPayload struct {
	SessionID string     `json:"sessionId"`
	OrderID   string     `json:"orderId"`
	Items     []cart.Key `json:"items"`
}
