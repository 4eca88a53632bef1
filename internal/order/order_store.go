package order

import (
	"context"

	"go-cart-api/internal/storage"

	"go.uber.org/zap"
)

// historyStore is the per-session order list, oldest first on disk.
type historyStore struct {
	orders *storage.Collection[Record]
}

func newHistoryStore(kv storage.Store, sessionID string, l *zap.Logger) *historyStore {
	return &historyStore{
		orders: storage.NewCollection[Record](kv, storage.SessionKey(sessionID, storage.KeyOrders), l),
	}
}

func (h *historyStore) Append(ctx context.Context, rec Record) {
	h.orders.Update(ctx, func(items []Record) ([]Record, bool) {
		return append(items, rec), true
	})
}

// List returns the orders newest first.
func (h *historyStore) List(ctx context.Context) []Record {
	items := h.orders.Load(ctx)
	out := make([]Record, len(items))
	for i, r := range items {
		out[len(items)-1-i] = r
	}
	return out
}

func (h *historyStore) Find(ctx context.Context, id string) (Record, bool) {
	for _, r := range h.orders.Load(ctx) {
		if r.ID == id || r.OrderNumber == id {
			return r, true
		}
	}
	return Record{}, false
}
