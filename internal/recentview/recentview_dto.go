package recentview

import "go-cart-api/internal/pkg/ident"

type AddRequest struct {
	ProductID ident.ProductID `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"max=200"`
	Price     int64           `json:"price" validate:"gte=0"`
	Image     string          `json:"image"`
}

type ListResponse struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}
