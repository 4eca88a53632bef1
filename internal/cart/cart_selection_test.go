package cart_test

import (
	"context"
	"testing"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_SelectAll(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	_, _ = s.Add(ctx, item("1", "", 100), 1)
	_, _ = s.Add(ctx, item("2", "", 100), 1)

	keys := s.SelectAll(ctx, true)
	assert.Equal(t, []cart.Key{{ProductID: "1"}, {ProductID: "2"}}, keys)
	assert.True(t, s.AllSelected(ctx))

	assert.Empty(t, s.SelectAll(ctx, false))
	assert.False(t, s.AllSelected(ctx))
}

func TestSelection_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("symmetric_difference", func(t *testing.T) {
		s, _ := newStore(t)
		_, _ = s.Add(ctx, item("1", "", 100), 1)
		_, _ = s.Add(ctx, item("2", "", 100), 1)

		on, err := s.Toggle(ctx, cart.Key{ProductID: "1"})
		require.NoError(t, err)
		assert.True(t, on)
		assert.False(t, s.AllSelected(ctx))

		on, err = s.Toggle(ctx, cart.Key{ProductID: "1"})
		require.NoError(t, err)
		assert.False(t, on)
		assert.Empty(t, s.Selection(ctx))
	})

	t.Run("unknown_key", func(t *testing.T) {
		s, _ := newStore(t)

		_, err := s.Toggle(ctx, cart.Key{ProductID: "9"})
		assert.ErrorIs(t, err, cart.ErrItemNotFound)
	})

	t.Run("new_items_are_not_selected", func(t *testing.T) {
		s, _ := newStore(t)
		_, _ = s.Add(ctx, item("1", "", 100), 1)
		s.SelectAll(ctx, true)
		_, _ = s.Add(ctx, item("2", "", 100), 1)

		assert.Equal(t, []cart.Key{{ProductID: "1"}}, s.Selection(ctx))
		assert.False(t, s.AllSelected(ctx))
	})
}

func TestSelection_PrunesStaleKeysOnLoad(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, storage.SessionKey("s1", storage.KeyCart), `[{"id":"1","size":"","price":100,"qty":1}]`))
	require.NoError(t, kv.Set(ctx, storage.SessionKey("s1", storage.KeySelection),
		`[{"productId":"1","size":""},{"productId":"7","size":""},{"productId":"1","size":""}]`))

	s := cart.NewStore(kv, "s1", nil)

	assert.Equal(t, []cart.Key{{ProductID: "1"}}, s.Selection(ctx))

	raw, err := kv.Get(ctx, storage.SessionKey("s1", storage.KeySelection))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"1","size":""}]`, raw)
}

func TestSelection_EmptyCartIsNotAllSelected(t *testing.T) {
	s, _ := newStore(t)
	assert.False(t, s.AllSelected(context.Background()))
}

func TestSnapshot_SelectedItems(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	_, _ = s.Add(ctx, item("1", "", 100), 1)
	_, _ = s.Add(ctx, item("2", "", 200), 1)
	_, _ = s.Add(ctx, item("3", "", 300), 1)
	_, _ = s.Toggle(ctx, cart.Key{ProductID: "3"})
	_, _ = s.Toggle(ctx, cart.Key{ProductID: "1"})

	got := s.Snapshot(ctx).SelectedItems()
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ProductID)
	assert.Equal(t, "3", got[1].ProductID)
}
