// Package pricing folds a cart, its selection and the discount records into
// checkout totals.
package pricing

import (
	"go-cart-api/internal/cart"
	"go-cart-api/internal/discount"
	"go-cart-api/internal/pkg/money"
)

// Policy holds the shipping rule.
type Policy struct {
	FreeShippingThreshold money.Money
	ShippingFee           money.Money
}

func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: 50000,
		ShippingFee:           3000,
	}
}

// Shipping is waived only when the post-discount subtotal is strictly above
// the threshold. Nothing selected means nothing ships.
func (p Policy) Shipping(discounted money.Money, itemCount int) money.Money {
	if itemCount == 0 || discounted > p.FreeShippingThreshold {
		return money.Zero
	}
	return p.ShippingFee
}

// Line is the priced view of one selected line item.
type Line struct {
	ProductID      string           `json:"productId"`
	Size           string           `json:"size"`
	Name           string           `json:"name"`
	Quantity       int              `json:"qty"`
	UnitPrice      money.Money      `json:"unitPrice"`
	EffectivePrice money.Money      `json:"effectivePrice"`
	Subtotal       money.Money      `json:"subtotal"`
	Discount       money.Money      `json:"discount"`
	Applied        *discount.Record `json:"appliedDiscount,omitempty"`
}

// Warning reports bad discount data met while pricing a line.
type Warning struct {
	ProductID string `json:"productId"`
	Err       error  `json:"-"`
	Message   string `json:"message"`
}

type Totals struct {
	Subtotal      money.Money `json:"subtotal"`
	DiscountTotal money.Money `json:"discountTotal"`
	Shipping      money.Money `json:"shipping"`
	Total         money.Money `json:"total"`
	ItemCount     int         `json:"itemCount"`
	Lines         []Line      `json:"lines"`
	Warnings      []Warning   `json:"warnings,omitempty"`
}

// Aggregate prices the selected items. It is pure: the same inputs always
// give the same totals.
func Aggregate(items []cart.LineItem, selection []cart.Key, records []discount.Record, policy Policy, resolver discount.Resolver) Totals {
	snap := cart.Snapshot{Items: items, Selection: selection}
	selected := snap.SelectedItems()

	t := Totals{Lines: make([]Line, 0, len(selected))}
	for _, it := range selected {
		res := resolver.Resolve(it.ProductID, it.UnitPrice, records)

		line := Line{
			ProductID:      it.ProductID,
			Size:           it.Size,
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			EffectivePrice: res.Effective,
			Subtotal:       it.UnitPrice.Mul(it.Quantity),
			Discount:       res.Reduction().Mul(it.Quantity),
			Applied:        res.Applied,
		}
		t.Lines = append(t.Lines, line)
		t.Subtotal = t.Subtotal.Add(line.Subtotal)
		t.DiscountTotal = t.DiscountTotal.Add(line.Discount)
		t.ItemCount += it.Quantity

		if res.DataError != nil {
			t.Warnings = append(t.Warnings, Warning{
				ProductID: it.ProductID,
				Err:       res.DataError,
				Message:   res.DataError.Error(),
			})
		}
	}

	discounted, _ := t.Subtotal.Sub(t.DiscountTotal)
	t.Shipping = policy.Shipping(discounted, len(selected))
	t.Total = discounted.Add(t.Shipping)
	return t
}
