package cart

import "go-cart-api/internal/pkg/money"

// MaxQuantity caps one line. Merges and stepper changes stop here.
const MaxQuantity = 999

// Key identifies a line item: one product in one size/option.
type Key struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
}

type LineItem struct {
	ProductID string      `json:"id" validate:"required"`
	Size      string      `json:"size"`
	UnitPrice money.Money `json:"price" validate:"gte=0"`
	Quantity  int         `json:"qty"`
	Name      string      `json:"name"`
	Image     string      `json:"image,omitempty"`
	Category  string      `json:"category,omitempty"`
}

func (i LineItem) Key() Key {
	return Key{ProductID: i.ProductID, Size: i.Size}
}

// Snapshot is a consistent read of the cart and its selection.
type Snapshot struct {
	Items       []LineItem
	Selection   []Key
	AllSelected bool
}

// SelectedItems returns the items whose key is selected, in cart order.
func (s Snapshot) SelectedItems() []LineItem {
	selected := make(map[Key]struct{}, len(s.Selection))
	for _, k := range s.Selection {
		selected[k] = struct{}{}
	}

	out := make([]LineItem, 0, len(s.Selection))
	for _, it := range s.Items {
		if _, ok := selected[it.Key()]; ok {
			out = append(out, it)
		}
	}
	return out
}
