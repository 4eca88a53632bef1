package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go-cart-api/internal/pkg/logger"

	"go.uber.org/zap"
)

// Collection is a JSON array persisted under one key with an in-process copy.
//
// Every read goes to the store so writes from other processes are seen.
// Reads never fail: a missing key or corrupt JSON yields an empty slice, and a
// store error falls back to the cached copy. Writes never fail either: a store
// error is logged and the cached copy stays authoritative until a later write
// succeeds.
type Collection[T any] struct {
	mu     sync.Mutex
	store  Store
	key    string
	logger *zap.Logger

	loaded  bool
	pending bool
	items   []T
}

func NewCollection[T any](store Store, key string, l *zap.Logger) *Collection[T] {
	return &Collection[T]{
		store:  store,
		key:    key,
		logger: logger.OrNop(l).With(zap.String("key", key)),
	}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns a copy of the current items.
func (c *Collection[T]) Load(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return clone(c.loadLocked(ctx))
}

// Save replaces the items and writes them through to the store.
func (c *Collection[T]) Save(ctx context.Context, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.saveLocked(ctx, items)
}

// Update runs fn on the current items under the collection lock and saves the result.
// When fn returns false nothing is written.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, bool)) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, changed := fn(clone(c.loadLocked(ctx)))
	if changed {
		c.saveLocked(ctx, next)
	}
	return clone(c.items)
}

// Reload drops the cached copy, including unsaved changes.
func (c *Collection[T]) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loaded = false
	c.pending = false
	c.items = nil
}

func (c *Collection[T]) loadLocked(ctx context.Context) []T {
	// unsaved local state wins over whatever the store holds
	if c.loaded && c.pending {
		return c.items
	}

	items, ok := c.read(ctx)
	if !ok && c.loaded {
		return c.items
	}
	c.items = items
	c.loaded = true
	return c.items
}

// read reports ok=false only when the store itself failed.
func (c *Collection[T]) read(ctx context.Context) ([]T, bool) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, true
	}
	if err != nil {
		c.logger.Warn("storage read failed, using cached collection", zap.Error(err))
		return []T{}, false
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Warn("corrupt stored collection, using empty collection", zap.Error(err))
		return []T{}, true
	}
	if items == nil {
		items = []T{}
	}
	return items, true
}

func (c *Collection[T]) saveLocked(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.items = clone(items)
	c.loaded = true

	b, err := json.Marshal(c.items)
	if err != nil {
		c.logger.Error("encode collection failed", zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.key, string(b)); err != nil {
		c.pending = true
		c.logger.Warn("storage write failed, keeping in-memory state", zap.Error(err))
		return
	}
	c.pending = false
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
