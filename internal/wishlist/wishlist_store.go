package wishlist

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go-cart-api/internal/pkg/logger"
	"go-cart-api/internal/storage"

	"go.uber.org/zap"
)

// ToggleStore is one session's liked set with optimistic toggling. The
// remote call runs outside the lock; a per-product pending flag rejects
// overlapping toggles and a per-product sequence number drops responses
// that were overtaken by a Sync.
type ToggleStore struct {
	mu      sync.Mutex
	entries *storage.Collection[Entry]
	remote  Remote
	logger  *zap.Logger
	now     func() time.Time

	pending map[string]bool
	seq     map[string]uint64
	counts  map[string]int
}

func NewToggleStore(kv storage.Store, sessionID string, remote Remote, l *zap.Logger) *ToggleStore {
	l = logger.OrNop(l).With(zap.String("session_id", sessionID))
	return &ToggleStore{
		entries: storage.NewCollection[Entry](kv, storage.SessionKey(sessionID, storage.KeyWishlist), l),
		remote:  remote,
		logger:  l,
		now:     time.Now,
		pending: make(map[string]bool),
		seq:     make(map[string]uint64),
		counts:  make(map[string]int),
	}
}

func (s *ToggleStore) Entries(ctx context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entries.Load(ctx)
}

func (s *ToggleStore) IsLiked(ctx context.Context, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return entryIndex(s.entries.Load(ctx), productID) >= 0
}

func (s *ToggleStore) State(ctx context.Context, productID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked(entryIndex(s.entries.Load(ctx), productID) >= 0, productID)
}

func (s *ToggleStore) LikeCount(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts[productID]
}

// Counts returns a copy of the known like counts.
func (s *ToggleStore) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// SeedCount records the like count shown for a product, unless a toggle on
// it is in flight.
func (s *ToggleStore) SeedCount(productID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending[productID] {
		return
	}
	s.counts[productID] = max(0, count)
}

// Toggle flips productID optimistically, asks the remote to apply it and
// rolls back on failure. entry supplies display data when liking.
func (s *ToggleStore) Toggle(ctx context.Context, entry Entry) (ToggleResult, error) {
	id := entry.ProductID

	// 1. Optimistic flip under the lock
	s.mu.Lock()
	if s.pending[id] {
		s.mu.Unlock()
		return ToggleResult{}, ErrTogglePending
	}

	items := s.entries.Load(ctx)
	prevIndex := entryIndex(items, id)
	prevCount := s.counts[id]
	wasLiked := prevIndex >= 0
	var prevEntry Entry
	if wasLiked {
		prevEntry = items[prevIndex]
		items = slices.Delete(items, prevIndex, prevIndex+1)
		s.counts[id] = max(0, s.counts[id]-1)
	} else {
		if entry.AddedAt.IsZero() {
			entry.AddedAt = s.now()
		}
		items = append(items, entry)
		s.counts[id]++
	}
	s.entries.Save(ctx, items)

	s.pending[id] = true
	s.seq[id]++
	mySeq := s.seq[id]
	s.mu.Unlock()

	// 2. Remote call
	var (
		ok  bool
		err error
	)
	if wasLiked {
		ok, err = s.remote.RemoveFromWishlist(ctx, id)
	} else {
		ok, err = s.remote.AddToWishlist(ctx, id)
	}

	// 3. Apply the response if it is still the latest for this product
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq[id] != mySeq {
		s.logger.Debug("discarding stale wishlist response", zap.String("product_id", id))
		liked := entryIndex(s.entries.Load(ctx), id) >= 0
		return ToggleResult{
			ProductID: id,
			State:     s.stateLocked(liked, id),
			Liked:     liked,
			LikeCount: s.counts[id],
			Stale:     true,
		}, nil
	}
	delete(s.pending, id)

	if ok && err == nil {
		return ToggleResult{
			ProductID: id,
			State:     s.stateLocked(!wasLiked, id),
			Liked:     !wasLiked,
			LikeCount: s.counts[id],
		}, nil
	}

	// 4. Rollback
	if err == nil {
		err = errors.New("remote rejected wishlist change")
	}
	s.logger.Warn("wishlist toggle failed, rolling back",
		zap.String("product_id", id),
		zap.Bool("was_liked", wasLiked),
		zap.Error(err),
	)

	items = s.entries.Load(ctx)
	if wasLiked {
		if entryIndex(items, id) < 0 {
			items = slices.Insert(items, min(prevIndex, len(items)), prevEntry)
		}
	} else if i := entryIndex(items, id); i >= 0 {
		items = slices.Delete(items, i, i+1)
	}
	s.counts[id] = prevCount
	s.entries.Save(ctx, items)

	return ToggleResult{
		ProductID:  id,
		State:      s.stateLocked(wasLiked, id),
		Liked:      wasLiked,
		LikeCount:  s.counts[id],
		RolledBack: true,
	}, ErrToggleFailed.WithCause(err)
}

// Sync replaces the local state with the server's view. Responses of toggles
// issued before the sync are discarded when they arrive.
func (s *ToggleStore) Sync(ctx context.Context, entries []Entry, counts map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.seq {
		s.seq[id]++
	}
	s.pending = make(map[string]bool)
	for id, c := range counts {
		s.counts[id] = max(0, c)
	}
	s.entries.Save(ctx, dedupe(entries))
}

func (s *ToggleStore) stateLocked(liked bool, productID string) State {
	switch {
	case s.pending[productID] && liked:
		return StatePendingLike
	case s.pending[productID]:
		return StatePendingUnlike
	case liked:
		return StateLiked
	default:
		return StateNotLiked
	}
}

func entryIndex(items []Entry, productID string) int {
	for i, e := range items {
		if e.ProductID == productID {
			return i
		}
	}
	return -1
}

func dedupe(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ProductID]; ok {
			continue
		}
		seen[e.ProductID] = struct{}{}
		out = append(out, e)
	}
	return out
}
