// Package recentview keeps the products a session looked at, most recent first.
package recentview

import (
	"context"
	"time"

	"go-cart-api/internal/pkg/money"
	"go-cart-api/internal/storage"

	"go.uber.org/zap"
)

const DefaultLimit = 20

type Item struct {
	ProductID string      `json:"id"`
	Name      string      `json:"name"`
	Price     money.Money `json:"price"`
	Image     string      `json:"image,omitempty"`
	ViewedAt  time.Time   `json:"viewedAt"`
}

type Store struct {
	items *storage.Collection[Item]
	limit int
	now   func() time.Time
}

func NewStore(kv storage.Store, sessionID string, limit int, l *zap.Logger) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		items: storage.NewCollection[Item](kv, storage.SessionKey(sessionID, storage.KeyRecentView), l),
		limit: limit,
		now:   time.Now,
	}
}

// Add moves item to the front, dropping an older view of the same product
// and anything past the limit.
func (s *Store) Add(ctx context.Context, item Item) []Item {
	if item.ViewedAt.IsZero() {
		item.ViewedAt = s.now()
	}

	return s.items.Update(ctx, func(items []Item) ([]Item, bool) {
		out := make([]Item, 0, min(len(items)+1, s.limit))
		out = append(out, item)
		for _, it := range items {
			if len(out) == s.limit {
				break
			}
			if it.ProductID == item.ProductID {
				continue
			}
			out = append(out, it)
		}
		return out, true
	})
}

func (s *Store) List(ctx context.Context) []Item {
	items := s.items.Load(ctx)
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	return items
}

func (s *Store) Clear(ctx context.Context) {
	s.items.Save(ctx, nil)
}
