// Package ident normalises product identifiers. The front-end sends ids both
// as JSON strings and JSON numbers; every store uses the canonical string.
package ident

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidProductID = errors.New("ident: invalid product id")

type ProductID string

// Normalize converts a raw id into its canonical string form. Strings are kept
// as given (trimmed); integral numbers are printed without exponent or ".0";
// fractional numbers are rejected.
func Normalize(raw any) (ProductID, error) {
	switch v := raw.(type) {
	case ProductID:
		return Normalize(string(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", ErrInvalidProductID
		}
		return ProductID(s), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return "", ErrInvalidProductID
		}
		return fromDecimal(d)
	case int:
		return fromDecimal(decimal.NewFromInt(int64(v)))
	case int64:
		return fromDecimal(decimal.NewFromInt(v))
	case float64:
		return fromDecimal(decimal.NewFromFloat(v))
	default:
		return "", ErrInvalidProductID
	}
}

func fromDecimal(d decimal.Decimal) (ProductID, error) {
	if !d.Equal(d.Truncate(0)) {
		return "", ErrInvalidProductID
	}
	return ProductID(d.Truncate(0).String()), nil
}

func (p ProductID) String() string {
	return string(p)
}

func (p *ProductID) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return ErrInvalidProductID
	}
	id, err := Normalize(raw)
	if err != nil {
		return err
	}
	*p = id
	return nil
}
