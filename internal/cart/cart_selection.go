package cart

import "context"

// Selection returns the selected keys, dropping any that no longer exist in the cart.
func (s *Store) Selection(ctx context.Context) []Key {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pruneLocked(ctx, s.items.Load(ctx))
}

// SelectAll selects every current item when flag is true, otherwise none.
func (s *Store) SelectAll(ctx context.Context, flag bool) []Key {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !flag {
		s.selection.Save(ctx, nil)
		return []Key{}
	}

	items := s.items.Load(ctx)
	keys := make([]Key, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key())
	}
	s.selection.Save(ctx, keys)
	return keys
}

// Toggle flips key in or out of the selection and reports whether it is now selected.
func (s *Store) Toggle(ctx context.Context, key Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.items.Load(ctx), key) < 0 {
		return false, ErrItemNotFound
	}

	var selected bool
	s.selection.Update(ctx, func(keys []Key) ([]Key, bool) {
		for i, k := range keys {
			if k == key {
				selected = false
				return append(keys[:i], keys[i+1:]...), true
			}
		}
		selected = true
		return append(keys, key), true
	})
	return selected, nil
}

// AllSelected is the state of the "select all" checkbox.
func (s *Store) AllSelected(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items.Load(ctx)
	return allSelected(items, s.pruneLocked(ctx, items))
}

// pruneLocked drops selected keys without a matching item and persists the
// result when anything changed.
func (s *Store) pruneLocked(ctx context.Context, items []LineItem) []Key {
	present := make(map[Key]struct{}, len(items))
	for _, it := range items {
		present[it.Key()] = struct{}{}
	}

	return s.selection.Update(ctx, func(keys []Key) ([]Key, bool) {
		kept := make([]Key, 0, len(keys))
		seen := make(map[Key]struct{}, len(keys))
		for _, k := range keys {
			if _, ok := present[k]; !ok {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			kept = append(kept, k)
		}
		return kept, len(kept) != len(keys)
	})
}

func allSelected(items []LineItem, sel []Key) bool {
	return len(items) > 0 && len(sel) == len(items)
}
