package cart

import "go-cart-api/internal/pkg/ident"

// ==================== REQUEST STRUCTS ====================

type AddItemRequest struct {
	ProductID ident.ProductID `json:"productId" validate:"required"`
	Size      string          `json:"size"`
	Price     int64           `json:"price" validate:"gte=0"`
	Qty       int             `json:"qty" validate:"required,gte=1,lte=999"`
	Name      string          `json:"name" validate:"max=200"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
}

// ChangeQtyRequest carries either a +/- delta from the stepper buttons or the
// raw text of the quantity field.
type ChangeQtyRequest struct {
	Size  string  `json:"size"`
	Delta *int    `json:"delta"`
	Value *string `json:"value"`
}

type SelectAllRequest struct {
	All bool `json:"all"`
}

type ToggleSelectionRequest struct {
	ProductID ident.ProductID `json:"productId" validate:"required"`
	Size      string          `json:"size"`
}

// ==================== RESPONSE STRUCTS ====================

type CartItemResponse struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Category  string `json:"category,omitempty"`
	Price     int64  `json:"price"`
	Qty       int    `json:"qty"`
	LineTotal int64  `json:"lineTotal"`
	Selected  bool   `json:"selected"`
}

type CartDetailResponse struct {
	Items       []CartItemResponse `json:"items"`
	ItemCount   int                `json:"itemCount"`
	AllSelected bool               `json:"allSelected"`
}

type ChangeQtyResponse struct {
	Item     CartItemResponse `json:"item"`
	Accepted bool             `json:"accepted"`
}

type SelectionResponse struct {
	Selection   []Key `json:"selection"`
	AllSelected bool  `json:"allSelected"`
}

func toItemResponse(it LineItem, selected bool) CartItemResponse {
	return CartItemResponse{
		ProductID: it.ProductID,
		Size:      it.Size,
		Name:      it.Name,
		Image:     it.Image,
		Category:  it.Category,
		Price:     it.UnitPrice.Int64(),
		Qty:       it.Quantity,
		LineTotal: it.UnitPrice.Mul(it.Quantity).Int64(),
		Selected:  selected,
	}
}
