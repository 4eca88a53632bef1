package order_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/discount"
	outboxMock "go-cart-api/internal/mock/outbox"
	"go-cart-api/internal/order"
	"go-cart-api/internal/outbox"
	"go-cart-api/internal/pkg/ident"
	"go-cart-api/internal/pricing"
	"go-cart-api/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	store  storage.Store
	cart   cart.Service
	outbox *outboxMock.MockRepository
	svc    order.Service
}

// slowStore delays reads the way a network round trip to Redis would.
type slowStore struct {
	storage.Store
	delay time.Duration
}

func (s slowStore) Get(ctx context.Context, key string) (string, error) {
	time.Sleep(s.delay)
	return s.Store.Get(ctx, key)
}

func newFixture(t *testing.T, withOutbox bool) *fixture {
	t.Helper()
	return newFixtureWithStore(t, storage.NewMemoryStore(), withOutbox)
}

func newFixtureWithStore(t *testing.T, store storage.Store, withOutbox bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	cartSvc := cart.NewService(cart.Deps{Store: store})
	pricingSvc := pricing.NewService(pricing.Deps{
		Cart: cartSvc,
		Discounts: discount.NewStaticRepository([]discount.Record{
			{ProductID: "1", Type: discount.TypePercent, Value: decimal.NewFromInt(10)},
		}),
	})

	f := &fixture{store: store, cart: cartSvc}
	deps := order.Deps{
		Store:   store,
		Cart:    cartSvc,
		Pricing: pricingSvc,
		Now:     func() time.Time { return time.Unix(1700000000, 0) },
	}
	if withOutbox {
		f.outbox = outboxMock.NewMockRepository(ctrl)
		deps.OutboxRepo = f.outbox
	}
	f.svc = order.NewService(deps)
	return f
}

func (f *fixture) addAndSelect(t *testing.T, id string, price int64, qty int) {
	t.Helper()
	ctx := context.Background()
	_, err := f.cart.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: ident.ProductID(id), Price: price, Qty: qty, Name: "item " + id})
	require.NoError(t, err)
	_, err = f.cart.ToggleSelection(ctx, "s1", cart.ToggleSelectionRequest{ProductID: ident.ProductID(id)})
	require.NoError(t, err)
}

func TestNewService_PanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { order.NewService(order.Deps{}) })
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("success_writes_outbox_and_history", func(t *testing.T) {
		f := newFixture(t, true)
		f.addAndSelect(t, "1", 100000, 1)
		f.addAndSelect(t, "2", 10000, 2)
		_, err := f.cart.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: ident.ProductID("3"), Price: 500, Qty: 1})
		require.NoError(t, err)

		f.outbox.EXPECT().
			CreateOutboxEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev outbox.Event) error {
				assert.Equal(t, order.EventClearCartItems, ev.EventType)
				assert.Equal(t, order.AggregateType, ev.AggregateType)

				var p order.ClearCartPayload
				require.NoError(t, json.Unmarshal(ev.Payload, &p))
				assert.Equal(t, "s1", p.SessionID)
				assert.Equal(t, ev.AggregateID, p.OrderID)
				assert.ElementsMatch(t, []cart.Key{{ProductID: "1"}, {ProductID: "2"}}, p.Items)
				return nil
			}).Times(1)

		res, err := f.svc.Checkout(ctx, "s1", order.CheckoutRequest{Note: "leave at door"})
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^ORD-1700000000-[0-9A-F]{4}$`), res.Order.OrderNumber)
		assert.Equal(t, order.StatusPending, res.Order.Status)
		assert.Equal(t, 3, res.Order.ItemCount)
		// 100000 - 10% + 20000 = 110000, above the free shipping threshold
		assert.Equal(t, int64(110000), res.Order.Totals.Total.Int64())
		assert.Equal(t, int64(0), res.Order.Totals.Shipping.Int64())
		assert.Equal(t, res.Order.Totals.Total, res.Payment.GrossAmount)
		assert.Len(t, res.Payment.Items, 2)

		// ordered lines stay in the cart until the consumer clears them
		detail, err := f.cart.Detail(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 3, detail.ItemCount)

		list, total, err := f.svc.List(ctx, "s1", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, res.Order.ID, list[0].ID)
		assert.Equal(t, "leave at door", list[0].Note)
	})

	t.Run("payment_items_add_up_with_shipping", func(t *testing.T) {
		f := newFixture(t, true)
		f.addAndSelect(t, "2", 10000, 1)
		f.outbox.EXPECT().CreateOutboxEvent(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Checkout(ctx, "s1", order.CheckoutRequest{})
		require.NoError(t, err)

		var sum int64
		for _, it := range res.Payment.Items {
			sum += it.Price.Int64() * int64(it.Quantity)
		}
		assert.Equal(t, res.Payment.GrossAmount.Int64(), sum)
		assert.Equal(t, int64(13000), sum)
		assert.Equal(t, "SHIPPING", res.Payment.Items[len(res.Payment.Items)-1].ID)
	})

	t.Run("nothing_selected", func(t *testing.T) {
		f := newFixture(t, true)
		_, err := f.cart.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: ident.ProductID("1"), Price: 100, Qty: 1})
		require.NoError(t, err)

		_, err = f.svc.Checkout(ctx, "s1", order.CheckoutRequest{})
		assert.ErrorIs(t, err, order.ErrNothingSelected)
	})

	t.Run("missing_session", func(t *testing.T) {
		f := newFixture(t, true)
		_, err := f.svc.Checkout(ctx, "", order.CheckoutRequest{})
		assert.ErrorIs(t, err, order.ErrMissingSession)
	})

	t.Run("outbox_failure_keeps_history_clean", func(t *testing.T) {
		f := newFixture(t, true)
		f.addAndSelect(t, "1", 100000, 1)

		dbErr := errors.New("connection refused")
		f.outbox.EXPECT().CreateOutboxEvent(gomock.Any(), gomock.Any()).Return(dbErr)

		_, err := f.svc.Checkout(ctx, "s1", order.CheckoutRequest{})
		assert.ErrorIs(t, err, order.ErrOrderFailed)
		assert.ErrorIs(t, err, dbErr)

		_, total, err := f.svc.List(ctx, "s1", 1, 10)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("without_outbox_clears_cart_inline", func(t *testing.T) {
		f := newFixture(t, false)
		f.addAndSelect(t, "1", 100000, 1)
		_, err := f.cart.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: ident.ProductID("3"), Price: 500, Qty: 1})
		require.NoError(t, err)

		_, err = f.svc.Checkout(ctx, "s1", order.CheckoutRequest{})
		require.NoError(t, err)

		detail, err := f.cart.Detail(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, detail.Items, 1)
		assert.Equal(t, "3", detail.Items[0].ProductID)
	})
}

func TestOrderService_ConcurrentCheckoutsKeepEveryOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWithStore(t, slowStore{Store: storage.NewMemoryStore(), delay: 2 * time.Millisecond}, true)
	f.addAndSelect(t, "2", 10000, 1)

	const n = 20
	f.outbox.EXPECT().CreateOutboxEvent(gomock.Any(), gomock.Any()).Return(nil).Times(n)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.svc.Checkout(ctx, "s1", order.CheckoutRequest{})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			ids[res.Order.ID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	list, total, err := f.svc.List(ctx, "s1", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(n), total)
	require.Len(t, list, n)
	for _, r := range list {
		assert.Contains(t, ids, r.ID)
	}
}

func TestOrderService_ListAndDetail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	var ids []string
	for i := 0; i < 3; i++ {
		f.addAndSelect(t, "1", 1000, 1)
		res, err := f.svc.Checkout(ctx, "s1", order.CheckoutRequest{})
		require.NoError(t, err)
		ids = append(ids, res.Order.ID)
	}

	t.Run("newest_first_paginated", func(t *testing.T) {
		page1, total, err := f.svc.List(ctx, "s1", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, page1, 2)
		assert.Equal(t, ids[2], page1[0].ID)
		assert.Equal(t, ids[1], page1[1].ID)

		page2, _, err := f.svc.List(ctx, "s1", 2, 2)
		require.NoError(t, err)
		require.Len(t, page2, 1)
		assert.Equal(t, ids[0], page2[0].ID)

		empty, _, err := f.svc.List(ctx, "s1", 5, 2)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("detail_found", func(t *testing.T) {
		res, err := f.svc.Detail(ctx, "s1", ids[1])
		require.NoError(t, err)
		assert.Equal(t, ids[1], res.ID)
	})

	t.Run("detail_other_session", func(t *testing.T) {
		_, err := f.svc.Detail(ctx, "s2", ids[1])
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("detail_blank_id", func(t *testing.T) {
		_, err := f.svc.Detail(ctx, "s1", " ")
		assert.ErrorIs(t, err, order.ErrInvalidOrderID)
	})
}
