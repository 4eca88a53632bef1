package wishlist

import (
	"time"

	"go-cart-api/internal/pkg/money"
)

type State string

const (
	StateNotLiked      State = "NOT_LIKED"
	StatePendingLike   State = "PENDING_LIKE"
	StateLiked         State = "LIKED"
	StatePendingUnlike State = "PENDING_UNLIKE"
)

// Entry is one liked product as kept under the "wishlist" key.
type Entry struct {
	ProductID     string       `json:"id"`
	Name          string       `json:"name"`
	Price         money.Money  `json:"price"`
	DiscountPrice *money.Money `json:"discountPrice,omitempty"`
	Image         string       `json:"image,omitempty"`
	AddedAt       time.Time    `json:"addedAt"`
}

// ToggleResult is the outcome of one toggle after the remote call resolved.
type ToggleResult struct {
	ProductID  string
	State      State
	Liked      bool
	LikeCount  int
	RolledBack bool
	// Stale is set when a Sync happened while the call was in flight; the
	// response was discarded and the synced state kept.
	Stale bool
}
