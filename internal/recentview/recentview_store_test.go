package recentview_test

import (
	"context"
	"fmt"
	"testing"

	"go-cart-api/internal/recentview"
	"go-cart-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []recentview.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ProductID)
	}
	return out
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("most_recent_first", func(t *testing.T) {
		s := recentview.NewStore(storage.NewMemoryStore(), "s1", 0, nil)

		s.Add(ctx, recentview.Item{ProductID: "1"})
		s.Add(ctx, recentview.Item{ProductID: "2"})

		assert.Equal(t, []string{"2", "1"}, ids(s.List(ctx)))
	})

	t.Run("dedupes_by_product", func(t *testing.T) {
		s := recentview.NewStore(storage.NewMemoryStore(), "s1", 0, nil)

		s.Add(ctx, recentview.Item{ProductID: "1"})
		s.Add(ctx, recentview.Item{ProductID: "2"})
		s.Add(ctx, recentview.Item{ProductID: "1"})

		assert.Equal(t, []string{"1", "2"}, ids(s.List(ctx)))
	})

	t.Run("capped", func(t *testing.T) {
		s := recentview.NewStore(storage.NewMemoryStore(), "s1", 3, nil)

		for i := 1; i <= 5; i++ {
			s.Add(ctx, recentview.Item{ProductID: fmt.Sprint(i)})
		}

		assert.Equal(t, []string{"5", "4", "3"}, ids(s.List(ctx)))
	})

	t.Run("stamps_view_time", func(t *testing.T) {
		s := recentview.NewStore(storage.NewMemoryStore(), "s1", 0, nil)

		items := s.Add(ctx, recentview.Item{ProductID: "1"})
		assert.False(t, items[0].ViewedAt.IsZero())
	})
}

func TestStore_ClearAndCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	key := storage.SessionKey("s1", storage.KeyRecentView)

	require.NoError(t, kv.Set(ctx, key, "[oops"))
	s := recentview.NewStore(kv, "s1", 0, nil)
	assert.Empty(t, s.List(ctx))

	s.Add(ctx, recentview.Item{ProductID: "1"})
	s.Clear(ctx)
	assert.Empty(t, s.List(ctx))

	raw, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
