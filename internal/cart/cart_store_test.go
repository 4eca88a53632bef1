package cart_test

import (
	"context"
	"math"
	"testing"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/pkg/money"
	"go-cart-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*cart.Store, storage.Store) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return cart.NewStore(kv, "s1", nil), kv
}

func item(id, size string, price int64) cart.LineItem {
	return cart.LineItem{ProductID: id, Size: size, UnitPrice: money.Money(price), Name: "item " + id}
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("merges_same_key", func(t *testing.T) {
		s, _ := newStore(t)

		_, err := s.Add(ctx, item("1", "M", 10000), 2)
		require.NoError(t, err)
		got, err := s.Add(ctx, item("1", "M", 10000), 3)
		require.NoError(t, err)

		assert.Equal(t, 5, got.Quantity)
		assert.Len(t, s.List(ctx), 1)
	})

	t.Run("merge_is_one_step_addition", func(t *testing.T) {
		a, _ := newStore(t)
		b, _ := newStore(t)

		_, _ = a.Add(ctx, item("1", "", 500), 2)
		_, _ = a.Add(ctx, item("1", "", 500), 4)
		_, _ = b.Add(ctx, item("1", "", 500), 6)

		assert.Equal(t, b.List(ctx), a.List(ctx))
	})

	t.Run("different_size_is_separate_line", func(t *testing.T) {
		s, _ := newStore(t)

		_, _ = s.Add(ctx, item("1", "S", 10000), 1)
		_, _ = s.Add(ctx, item("1", "L", 10000), 1)

		assert.Len(t, s.List(ctx), 2)
	})

	t.Run("existing_entry_keeps_price", func(t *testing.T) {
		s, _ := newStore(t)

		_, _ = s.Add(ctx, item("1", "", 10000), 1)
		got, err := s.Add(ctx, item("1", "", 12000), 1)
		require.NoError(t, err)

		assert.Equal(t, money.Money(10000), got.UnitPrice)
	})

	t.Run("rejects_zero_qty", func(t *testing.T) {
		s, _ := newStore(t)

		_, err := s.Add(ctx, item("1", "", 100), 0)
		assert.ErrorIs(t, err, cart.ErrInvalidQty)
		assert.Empty(t, s.List(ctx))
	})

	t.Run("rejects_qty_above_cap", func(t *testing.T) {
		s, _ := newStore(t)
		_, err := s.Add(ctx, item("1", "M", 10000), 1)
		require.NoError(t, err)

		_, err = s.Add(ctx, item("1", "M", 10000), math.MaxInt)
		assert.ErrorIs(t, err, cart.ErrInvalidQty)
		_, err = s.Add(ctx, item("1", "M", 10000), cart.MaxQuantity+1)
		assert.ErrorIs(t, err, cart.ErrInvalidQty)

		assert.Equal(t, 1, s.List(ctx)[0].Quantity)
	})

	t.Run("merge_saturates_at_cap", func(t *testing.T) {
		s, _ := newStore(t)

		_, _ = s.Add(ctx, item("1", "M", 10000), 500)
		got, err := s.Add(ctx, item("1", "M", 10000), cart.MaxQuantity)
		require.NoError(t, err)

		assert.Equal(t, cart.MaxQuantity, got.Quantity)
	})

	t.Run("rejects_missing_id", func(t *testing.T) {
		s, _ := newStore(t)

		_, err := s.Add(ctx, item("", "", 100), 1)
		assert.ErrorIs(t, err, cart.ErrInvalidItem)
	})

	t.Run("persists_immediately", func(t *testing.T) {
		s, kv := newStore(t)

		_, _ = s.Add(ctx, item("1", "M", 10000), 2)

		raw, err := kv.Get(ctx, storage.SessionKey("s1", storage.KeyCart))
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"1","size":"M","price":10000,"qty":2,"name":"item 1"}]`, raw)
	})
}

func TestStore_ChangeQuantity(t *testing.T) {
	ctx := context.Background()
	key := cart.Key{ProductID: "1", Size: "M"}

	t.Run("floor_is_one", func(t *testing.T) {
		s, _ := newStore(t)
		_, _ = s.Add(ctx, item("1", "M", 10000), 2)

		got, err := s.ChangeQuantity(ctx, key, -5)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Quantity)
	})

	t.Run("increments", func(t *testing.T) {
		s, _ := newStore(t)
		_, _ = s.Add(ctx, item("1", "M", 10000), 1)

		got, err := s.ChangeQuantity(ctx, key, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Quantity)
	})

	t.Run("ceiling_is_cap", func(t *testing.T) {
		s, _ := newStore(t)
		_, _ = s.Add(ctx, item("1", "M", 10000), 2)

		got, err := s.ChangeQuantity(ctx, key, math.MaxInt)
		require.NoError(t, err)
		assert.Equal(t, cart.MaxQuantity, got.Quantity)

		got, err = s.ChangeQuantity(ctx, key, math.MinInt)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Quantity)
	})

	t.Run("stored_overflow_is_clamped", func(t *testing.T) {
		s, kv := newStore(t)
		require.NoError(t, kv.Set(ctx, storage.SessionKey("s1", storage.KeyCart),
			`[{"id":"1","size":"M","price":10000,"qty":9223372036854775807}]`))

		got, err := s.ChangeQuantity(ctx, key, 1)
		require.NoError(t, err)
		assert.Equal(t, cart.MaxQuantity, got.Quantity)
	})

	t.Run("unknown_key", func(t *testing.T) {
		s, _ := newStore(t)

		_, err := s.ChangeQuantity(ctx, key, 1)
		assert.ErrorIs(t, err, cart.ErrItemNotFound)
	})
}

func TestStore_SetQuantity(t *testing.T) {
	ctx := context.Background()
	key := cart.Key{ProductID: "1"}

	tests := []struct {
		name     string
		input    string
		want     int
		accepted bool
	}{
		{"valid", "7", 7, true},
		{"trimmed", " 4 ", 4, true},
		{"garbage_keeps_previous", "abc", 3, false},
		{"zero_keeps_previous", "0", 3, false},
		{"negative_keeps_previous", "-2", 3, false},
		{"empty_keeps_previous", "", 3, false},
		{"above_cap_lowered", "5000", cart.MaxQuantity, true},
		{"out_of_range_keeps_previous", "99999999999999999999", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newStore(t)
			_, _ = s.Add(ctx, item("1", "", 100), 3)

			got, accepted, err := s.SetQuantity(ctx, key, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, accepted)
			assert.Equal(t, tt.want, got.Quantity)
			assert.Equal(t, tt.want, s.List(ctx)[0].Quantity)
		})
	}
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("prunes_selection", func(t *testing.T) {
		s, _ := newStore(t)
		_, _ = s.Add(ctx, item("1", "", 100), 1)
		_, _ = s.Add(ctx, item("2", "", 100), 1)
		s.SelectAll(ctx, true)

		require.NoError(t, s.Remove(ctx, cart.Key{ProductID: "1"}))

		assert.Equal(t, []cart.Key{{ProductID: "2"}}, s.Selection(ctx))
		assert.True(t, s.AllSelected(ctx))
	})

	t.Run("unknown_key", func(t *testing.T) {
		s, _ := newStore(t)
		assert.ErrorIs(t, s.Remove(ctx, cart.Key{ProductID: "x"}), cart.ErrItemNotFound)
	})

	t.Run("remove_many_ignores_missing", func(t *testing.T) {
		s, _ := newStore(t)
		_, _ = s.Add(ctx, item("1", "", 100), 1)
		_, _ = s.Add(ctx, item("2", "", 100), 1)

		n := s.RemoveMany(ctx, []cart.Key{{ProductID: "1"}, {ProductID: "9"}})

		assert.Equal(t, 1, n)
		assert.Len(t, s.List(ctx), 1)
	})
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s, kv := newStore(t)
	_, _ = s.Add(ctx, item("1", "", 100), 1)
	s.SelectAll(ctx, true)

	s.Clear(ctx)

	snap := s.Snapshot(ctx)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Selection)
	assert.False(t, snap.AllSelected)

	raw, err := kv.Get(ctx, storage.SessionKey("s1", storage.KeyCart))
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestStore_Reload(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	first := cart.NewStore(kv, "s1", nil)
	_, _ = first.Add(ctx, item("1", "M", 10000), 2)

	second := cart.NewStore(kv, "s1", nil)
	assert.Equal(t, first.List(ctx), second.List(ctx))
}

func TestStore_CorruptStateIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, storage.SessionKey("s1", storage.KeyCart), "{oops"))

	s := cart.NewStore(kv, "s1", nil)
	assert.Empty(t, s.List(ctx))

	_, err := s.Add(ctx, item("1", "", 100), 1)
	require.NoError(t, err)
	assert.Len(t, s.List(ctx), 1)
}
