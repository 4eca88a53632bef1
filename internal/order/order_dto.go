package order

type CheckoutRequest struct {
	Note string `json:"note" binding:"max=500"`
}

type OrderResponse struct {
	Record
	ItemCount int `json:"itemCount"`
}

type CheckoutResponse struct {
	Order   OrderResponse  `json:"order"`
	Payment PaymentRequest `json:"payment"`
}

func toOrderResponse(r Record) OrderResponse {
	count := 0
	for _, it := range r.Items {
		count += it.Quantity
	}
	return OrderResponse{Record: r, ItemCount: count}
}
