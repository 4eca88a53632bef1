package pricing

import (
	"context"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/discount"
	"go-cart-api/internal/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:generate mockgen -source=pricing_service.go -destination=../mock/pricing/pricing_service_mock.go -package=mock
type Service interface {
	Quote(ctx context.Context, sessionID string) (QuoteResponse, error)
	// Price runs the aggregator over an already loaded cart snapshot.
	Price(ctx context.Context, snap cart.Snapshot) (Totals, error)
}

type Deps struct {
	Cart      cart.Service
	Discounts discount.Repository
	Resolver  discount.Resolver
	// Policy nil means DefaultPolicy; a set policy is used as is, zero fees included.
	Policy *Policy
	Locale language.Tag
	Logger *zap.Logger
}

type service struct {
	cart      cart.Service
	discounts discount.Repository
	resolver  discount.Resolver
	policy    Policy
	locale    language.Tag
	logger    *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Cart == nil {
		panic("cart service cannot be nil")
	}
	if deps.Discounts == nil {
		panic("discount repository cannot be nil")
	}

	policy := DefaultPolicy()
	if deps.Policy != nil {
		policy = *deps.Policy
	}
	locale := deps.Locale
	if locale == language.Und {
		locale = language.Korean
	}

	return &service{
		cart:      deps.Cart,
		discounts: deps.Discounts,
		resolver:  deps.Resolver,
		policy:    policy,
		locale:    locale,
		logger:    logger.OrNop(deps.Logger).Named("pricing"),
	}
}

func (s *service) Quote(ctx context.Context, sessionID string) (QuoteResponse, error) {
	snap, err := s.cart.Snapshot(ctx, sessionID)
	if err != nil {
		return QuoteResponse{}, err
	}

	totals, err := s.Price(ctx, snap)
	if err != nil {
		return QuoteResponse{}, err
	}

	for _, w := range totals.Warnings {
		s.logger.Warn("discount data error",
			zap.String("session_id", sessionID),
			zap.String("product_id", w.ProductID),
			zap.Error(w.Err),
		)
	}

	return s.toResponse(totals), nil
}

func (s *service) Price(ctx context.Context, snap cart.Snapshot) (Totals, error) {
	selected := snap.SelectedItems()

	// 1. Collect distinct product ids of the selection
	seen := make(map[string]struct{}, len(selected))
	ids := make([]string, 0, len(selected))
	for _, it := range selected {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}

	// 2. Load discount records
	records, err := s.discounts.ListByProductIDs(ctx, ids)
	if err != nil {
		s.logger.Error("load discounts failed", zap.Int("products", len(ids)), zap.Error(err))
		return Totals{}, discount.ErrDiscountLoadFailed.WithCause(err)
	}

	// 3. Aggregate
	return Aggregate(snap.Items, snap.Selection, records, s.policy, s.resolver), nil
}

func (s *service) toResponse(t Totals) QuoteResponse {
	discounted, _ := t.Subtotal.Sub(t.DiscountTotal)
	left, _ := s.policy.FreeShippingThreshold.Sub(discounted)
	if t.Shipping == 0 {
		left = 0
	}

	return QuoteResponse{
		Totals:            t,
		SubtotalText:      t.Subtotal.Format(s.locale),
		DiscountTotalText: t.DiscountTotal.Format(s.locale),
		ShippingText:      t.Shipping.Format(s.locale),
		TotalText:         t.Total.Format(s.locale),
		FreeShippingLeft:  left.Int64(),
	}
}
