package discount

import (
	"time"

	"go-cart-api/internal/pkg/money"
)

// TieBreak decides which record wins when several match one product.
type TieBreak string

const (
	// TieBreakLargest picks the record with the biggest reduction; equal
	// reductions keep list order.
	TieBreakLargest TieBreak = "largest"
	// TieBreakFirst picks the first matching record in list order.
	TieBreakFirst TieBreak = "first"
)

func ParseTieBreak(s string) TieBreak {
	if TieBreak(s) == TieBreakFirst {
		return TieBreakFirst
	}
	return TieBreakLargest
}

type Resolver struct {
	tieBreak      TieBreak
	enforceWindow bool
	now           func() time.Time
}

type ResolverOption func(*Resolver)

func WithTieBreak(tb TieBreak) ResolverOption {
	return func(r *Resolver) { r.tieBreak = tb }
}

// WithValidityWindow makes the resolver ignore records outside
// [ValidFrom, ValidTo] at now(). Off by default.
func WithValidityWindow(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.enforceWindow = true
		if now != nil {
			r.now = now
		}
	}
}

func NewResolver(opts ...ResolverOption) Resolver {
	r := Resolver{
		tieBreak: TieBreakLargest,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Resolution is the outcome of resolving one product's price.
type Resolution struct {
	Original  money.Money
	Effective money.Money
	Applied   *Record
	// DataError flags bad discount data: a flat discount larger than the
	// price (the price is clamped to zero) or a malformed matching record.
	DataError error
}

// Reduction is the per-unit amount taken off.
func (r Resolution) Reduction() money.Money {
	d, _ := r.Original.Sub(r.Effective)
	return d
}

// Resolve computes the effective unit price of a product under at most one
// discount record. It has no side effects.
func (r Resolver) Resolve(productID string, original money.Money, records []Record) Resolution {
	res := Resolution{Original: original, Effective: original}
	first := r.tieBreak == TieBreakFirst

	var (
		best        *Record
		bestPrice   money.Money
		bestClamped bool
	)
	for i := range records {
		rec := records[i]
		if rec.ProductID != productID {
			continue
		}
		if err := rec.Validate(); err != nil {
			if res.DataError == nil {
				res.DataError = err
			}
			continue
		}
		if r.enforceWindow && !rec.ActiveAt(r.now()) {
			continue
		}

		price, clamped := apply(original, rec)
		if best == nil || (!first && price < bestPrice) {
			best = &rec
			bestPrice = price
			bestClamped = clamped
		}
		if first {
			break
		}
	}

	if best == nil {
		return res
	}

	res.Applied = best
	res.Effective = bestPrice
	if bestClamped {
		res.DataError = ErrDiscountExceedsPrice
	}
	return res
}

func apply(original money.Money, rec Record) (money.Money, bool) {
	switch rec.Type {
	case TypePercent:
		return original.PercentOff(rec.Value), false
	default:
		off, err := money.FromDecimal(rec.Value)
		if err != nil {
			return original, false
		}
		return original.Sub(off)
	}
}
