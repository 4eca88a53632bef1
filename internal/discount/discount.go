package discount

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypePercent Type = "PERCENT"
	TypeFlat    Type = "FLAT"
)

// ParseType accepts the backend labels ("정률", "정액") and English aliases.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "정률", "percent", "percentage", "rate":
		return TypePercent, nil
	case "정액", "flat", "fixed", "amount":
		return TypeFlat, nil
	default:
		return Type(s), ErrUnknownType
	}
}

// Record is one discount row as delivered by the backend.
type Record struct {
	ProductID string          `json:"productId"`
	Type      Type            `json:"discountType"`
	Value     decimal.Decimal `json:"discountValue"`
	ValidFrom *time.Time      `json:"validFrom,omitempty"`
	ValidTo   *time.Time      `json:"validTo,omitempty"`
}

func (r Record) Validate() error {
	if r.Value.IsNegative() {
		return ErrInvalidRecord
	}
	switch r.Type {
	case TypePercent:
		if r.Value.GreaterThan(decimal.NewFromInt(100)) {
			return ErrInvalidRecord
		}
	case TypeFlat:
	default:
		return ErrInvalidRecord
	}
	return nil
}

// ActiveAt reports whether t falls inside the validity window. Open bounds
// are unbounded.
func (r Record) ActiveAt(t time.Time) bool {
	if r.ValidFrom != nil && t.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidTo != nil && t.After(*r.ValidTo) {
		return false
	}
	return true
}
