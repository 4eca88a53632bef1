package pricing

// QuoteResponse is the totals payload shown at checkout and handed to the
// payment flow. Formatted fields use the configured locale.
type QuoteResponse struct {
	Totals

	SubtotalText      string `json:"subtotalText"`
	DiscountTotalText string `json:"discountTotalText"`
	ShippingText      string `json:"shippingText"`
	TotalText         string `json:"totalText"`
	FreeShippingLeft  int64  `json:"freeShippingLeft"`
}
