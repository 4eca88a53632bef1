package cart

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"go-cart-api/internal/pkg/logger"
	"go-cart-api/internal/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Store is one session's cart plus its checkout selection. Every mutation is
// written back to the key-value store before it returns.
type Store struct {
	mu        sync.Mutex
	items     *storage.Collection[LineItem]
	selection *storage.Collection[Key]
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewStore(kv storage.Store, sessionID string, l *zap.Logger) *Store {
	l = logger.OrNop(l).With(zap.String("session_id", sessionID))
	return &Store{
		items:     storage.NewCollection[LineItem](kv, storage.SessionKey(sessionID, storage.KeyCart), l),
		selection: storage.NewCollection[Key](kv, storage.SessionKey(sessionID, storage.KeySelection), l),
		validate:  validator.New(),
		logger:    l,
	}
}

func (s *Store) List(ctx context.Context) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.Load(ctx)
}

func (s *Store) Get(ctx context.Context, key Key) (LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items.Load(ctx)
	if i := indexOf(items, key); i >= 0 {
		return items[i], nil
	}
	return LineItem{}, ErrItemNotFound
}

// Add merges qty into the entry with the same (id, size) or appends a new one.
// An existing entry keeps its stored price and metadata. A merge stops at MaxQuantity.
func (s *Store) Add(ctx context.Context, item LineItem, qty int) (LineItem, error) {
	if qty < 1 || qty > MaxQuantity {
		return LineItem{}, ErrInvalidQty
	}
	if err := s.validate.Struct(item); err != nil {
		return LineItem{}, ErrInvalidItem.WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out LineItem
	s.items.Update(ctx, func(items []LineItem) ([]LineItem, bool) {
		if i := indexOf(items, item.Key()); i >= 0 {
			items[i].Quantity = clampQuantity(clampQuantity(items[i].Quantity) + qty)
			out = items[i]
			return items, true
		}
		item.Quantity = qty
		out = item
		return append(items, item), true
	})
	return out, nil
}

// ChangeQuantity applies delta, keeping the result within [1, MaxQuantity].
func (s *Store) ChangeQuantity(ctx context.Context, key Key, delta int) (LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		out   LineItem
		found bool
	)
	s.items.Update(ctx, func(items []LineItem) ([]LineItem, bool) {
		i := indexOf(items, key)
		if i < 0 {
			return items, false
		}
		found = true
		delta = max(-MaxQuantity, min(delta, MaxQuantity))
		items[i].Quantity = clampQuantity(clampQuantity(items[i].Quantity) + delta)
		out = items[i]
		return items, true
	})
	if !found {
		return LineItem{}, ErrItemNotFound
	}
	return out, nil
}

// SetQuantity sets the quantity from free text. Input that is not a positive
// integer leaves the previous value in place and reports accepted=false;
// values above MaxQuantity are lowered to it.
func (s *Store) SetQuantity(ctx context.Context, key Key, raw string) (item LineItem, accepted bool, err error) {
	qty, perr := strconv.Atoi(strings.TrimSpace(raw))
	valid := perr == nil && qty >= 1

	s.mu.Lock()
	defer s.mu.Unlock()

	var found bool
	s.items.Update(ctx, func(items []LineItem) ([]LineItem, bool) {
		i := indexOf(items, key)
		if i < 0 {
			return items, false
		}
		found = true
		if valid {
			items[i].Quantity = min(qty, MaxQuantity)
		}
		item = items[i]
		return items, valid
	})
	if !found {
		return LineItem{}, false, ErrItemNotFound
	}
	if !valid {
		s.logger.Debug("rejected quantity input", zap.String("product_id", key.ProductID), zap.String("input", raw))
	}
	return item, valid, nil
}

// Remove deletes the entry and drops its key from the selection.
func (s *Store) Remove(ctx context.Context, key Key) error {
	if s.RemoveMany(ctx, []Key{key}) == 0 {
		return ErrItemNotFound
	}
	return nil
}

// RemoveMany deletes every listed entry that exists and returns how many were removed.
func (s *Store) RemoveMany(ctx context.Context, keys []Key) int {
	drop := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	items := s.items.Update(ctx, func(items []LineItem) ([]LineItem, bool) {
		kept := items[:0]
		for _, it := range items {
			if _, ok := drop[it.Key()]; ok {
				removed++
				continue
			}
			kept = append(kept, it)
		}
		return kept, removed > 0
	})
	if removed > 0 {
		s.pruneLocked(ctx, items)
	}
	return removed
}

// Clear empties the cart and the selection.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Save(ctx, nil)
	s.selection.Save(ctx, nil)
}

func (s *Store) Snapshot(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items.Load(ctx)
	sel := s.pruneLocked(ctx, items)
	return Snapshot{
		Items:       items,
		Selection:   sel,
		AllSelected: allSelected(items, sel),
	}
}

func clampQuantity(q int) int {
	return max(1, min(q, MaxQuantity))
}

func indexOf(items []LineItem, key Key) int {
	for i, it := range items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}
