package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/outbox"
	"go-cart-api/internal/pkg/logger"
	"go-cart-api/internal/pricing"
	"go-cart-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (CheckoutResponse, error)
	List(ctx context.Context, sessionID string, page, limit int) ([]OrderResponse, int64, error)
	Detail(ctx context.Context, sessionID, orderID string) (OrderResponse, error)
}

type Deps struct {
	Store   storage.Store
	Cart    cart.Service
	Pricing pricing.Service
	// OutboxRepo may be nil; checkout then clears the ordered lines itself.
	OutboxRepo outbox.Repository
	CacheSize  int
	Logger     *zap.Logger
	Now        func() time.Time
}

type service struct {
	histories  *storage.SessionCache[*historyStore]
	cart       cart.Service
	pricing    pricing.Service
	outboxRepo outbox.Repository
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(deps Deps) Service {
	if deps.Store == nil {
		panic("store cannot be nil")
	}
	if deps.Cart == nil {
		panic("cart service cannot be nil")
	}
	if deps.Pricing == nil {
		panic("pricing service cannot be nil")
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	l := logger.OrNop(deps.Logger).Named("order")

	histories, err := storage.NewSessionCache(deps.CacheSize, func(sessionID string) *historyStore {
		return newHistoryStore(deps.Store, sessionID, l)
	})
	if err != nil {
		panic(err)
	}

	return &service{
		histories:  histories,
		cart:       deps.Cart,
		pricing:    deps.Pricing,
		outboxRepo: deps.OutboxRepo,
		logger:     l,
		now:        now,
	}
}

// history pins the session's order list; callers defer release.
func (s *service) history(sessionID string) (*historyStore, func()) {
	return s.histories.Acquire(sessionID)
}

func (s *service) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (CheckoutResponse, error) {
	if sessionID == "" {
		return CheckoutResponse{}, ErrMissingSession
	}
	log := s.logger.With(zap.String("session_id", sessionID))

	// 1. Snapshot cart and selection
	snap, err := s.cart.Snapshot(ctx, sessionID)
	if err != nil {
		return CheckoutResponse{}, err
	}

	// 2. Nothing selected, nothing to order
	selected := snap.SelectedItems()
	if len(selected) == 0 {
		return CheckoutResponse{}, ErrNothingSelected
	}

	// 3. Price the snapshot
	totals, err := s.pricing.Price(ctx, snap)
	if err != nil {
		return CheckoutResponse{}, err
	}

	// 4. Build the record
	createdAt := s.now()
	rec := Record{
		ID:          uuid.NewString(),
		OrderNumber: orderNumber(createdAt),
		Status:      StatusPending,
		Items:       totals.Lines,
		Totals: Totals{
			Subtotal:      totals.Subtotal,
			DiscountTotal: totals.DiscountTotal,
			Shipping:      totals.Shipping,
			Total:         totals.Total,
		},
		Note:      req.Note,
		CreatedAt: createdAt,
	}

	// 5. Payment payload
	payment := buildPayment(rec)

	// 6. Queue cart cleanup
	keys := make([]cart.Key, 0, len(selected))
	for _, it := range selected {
		keys = append(keys, it.Key())
	}
	if err := s.queueClearCart(ctx, sessionID, rec, keys); err != nil {
		log.Error("queue cart cleanup failed", zap.String("order_number", rec.OrderNumber), zap.Error(err))
		return CheckoutResponse{}, ErrOrderFailed.WithCause(err)
	}

	// 7. Append to history
	history, release := s.history(sessionID)
	history.Append(ctx, rec)
	release()

	log.Info("order placed",
		zap.String("order_number", rec.OrderNumber),
		zap.Int64("total", rec.Totals.Total.Int64()),
		zap.Int("lines", len(rec.Items)),
	)

	return CheckoutResponse{
		Order:   toOrderResponse(rec),
		Payment: payment,
	}, nil
}

func (s *service) queueClearCart(ctx context.Context, sessionID string, rec Record, keys []cart.Key) error {
	if s.outboxRepo == nil {
		return s.cart.RemoveItems(ctx, sessionID, keys)
	}

	ev, err := outbox.NewEvent(AggregateType, rec.ID, EventClearCartItems, ClearCartPayload{
		SessionID: sessionID,
		OrderID:   rec.ID,
		Items:     keys,
	})
	if err != nil {
		return err
	}
	return s.outboxRepo.CreateOutboxEvent(ctx, ev)
}

func (s *service) List(ctx context.Context, sessionID string, page, limit int) ([]OrderResponse, int64, error) {
	if sessionID == "" {
		return nil, 0, ErrMissingSession
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	history, release := s.history(sessionID)
	defer release()

	all := history.List(ctx)
	total := int64(len(all))

	start := (page - 1) * limit
	if start >= len(all) {
		return []OrderResponse{}, total, nil
	}
	end := min(start+limit, len(all))

	out := make([]OrderResponse, 0, end-start)
	for _, r := range all[start:end] {
		out = append(out, toOrderResponse(r))
	}
	return out, total, nil
}

func (s *service) Detail(ctx context.Context, sessionID, orderID string) (OrderResponse, error) {
	if sessionID == "" {
		return OrderResponse{}, ErrMissingSession
	}
	if strings.TrimSpace(orderID) == "" {
		return OrderResponse{}, ErrInvalidOrderID
	}

	history, release := s.history(sessionID)
	defer release()

	rec, ok := history.Find(ctx, orderID)
	if !ok {
		return OrderResponse{}, ErrOrderNotFound
	}
	return toOrderResponse(rec), nil
}

// orderNumber is ORD-<unix seconds>-<4 upper hex chars>.
func orderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD-%d-%s", t.Unix(), suffix)
}

func buildPayment(rec Record) PaymentRequest {
	items := make([]PaymentItem, 0, len(rec.Items)+1)
	for _, l := range rec.Items {
		id := l.ProductID
		if l.Size != "" {
			id = l.ProductID + ":" + l.Size
		}
		items = append(items, PaymentItem{
			ID:       id,
			Name:     l.Name,
			Price:    l.EffectivePrice,
			Quantity: l.Quantity,
		})
	}
	if rec.Totals.Shipping > 0 {
		items = append(items, PaymentItem{
			ID:       shippingLineID,
			Name:     shippingLineName,
			Price:    rec.Totals.Shipping,
			Quantity: 1,
		})
	}

	return PaymentRequest{
		OrderID:     rec.OrderNumber,
		GrossAmount: rec.Totals.Total,
		Items:       items,
	}
}
