// Package money holds whole-unit currency amounts (KRW has no minor unit).
// Every operation keeps amounts non-negative and integral.
package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrNegative = errors.New("money: negative amount")
	ErrInvalid  = errors.New("money: invalid amount")
)

var hundred = decimal.NewFromInt(100)

type Money int64

const Zero Money = 0

// Max is where Add and Mul saturate instead of wrapping.
const Max Money = math.MaxInt64

const floor Money = math.MinInt64

func New(v int64) (Money, error) {
	if v < 0 {
		return Zero, ErrNegative
	}
	return Money(v), nil
}

// FromDecimal rounds half up to a whole unit, saturating at Max.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Zero, ErrNegative
	}
	d = d.Round(0)
	if d.GreaterThan(Max.Decimal()) {
		return Max, nil
	}
	return Money(d.IntPart()), nil
}

// Parse reads user or upstream text such as "10,000", "10000원" or "₩ 9,900".
func Parse(s string) (Money, error) {
	clean := strings.NewReplacer(",", "", " ", "", "원", "", "₩", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return Zero, ErrInvalid
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Zero, ErrInvalid
	}
	return FromDecimal(d)
}

func (m Money) Int64() int64 {
	return int64(m)
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// Add saturates at Max (and at the int64 floor for negative operands).
func (m Money) Add(o Money) Money {
	switch {
	case o > 0 && m > Max-o:
		return Max
	case o < 0 && m < floor-o:
		return floor
	}
	return m + o
}

// Sub returns m-o, clamped at zero. clamped reports whether the raw result was negative.
func (m Money) Sub(o Money) (res Money, clamped bool) {
	if o > m {
		return Zero, true
	}
	return m - o, false
}

// Mul multiplies by a quantity, saturating like Add; non-positive quantities yield zero.
func (m Money) Mul(qty int) Money {
	if qty <= 0 {
		return Zero
	}
	q := Money(qty)
	switch {
	case m > 0 && m > Max/q:
		return Max
	case m < 0 && m < floor/q:
		return floor
	}
	return m * q
}

// PercentOff returns m*(100-p)/100 rounded half up. p is clamped to [0,100].
func (m Money) PercentOff(p decimal.Decimal) Money {
	if p.IsNegative() {
		p = decimal.Zero
	}
	if p.GreaterThan(hundred) {
		p = hundred
	}
	res, _ := FromDecimal(m.Decimal().Mul(hundred.Sub(p)).Div(hundred))
	return res
}

// Format renders the amount with locale digit grouping: "10,000원" for Korean,
// "₩10,000" otherwise.
func (m Money) Format(tag language.Tag) string {
	p := message.NewPrinter(tag)
	if base, _ := tag.Base(); base.String() == "ko" {
		return p.Sprintf("%d원", int64(m))
	}
	return p.Sprintf("₩%d", int64(m))
}
