package wishlist

import (
	"time"

	"go-cart-api/internal/pkg/ident"
)

// ==================== REQUEST STRUCTS ====================

// ToggleRequest carries the display data stored when the product becomes liked.
type ToggleRequest struct {
	Name          string `json:"name" validate:"max=200"`
	Price         int64  `json:"price" validate:"gte=0"`
	DiscountPrice *int64 `json:"discountPrice" validate:"omitempty,gte=0"`
	Image         string `json:"image"`
	LikeCount     *int   `json:"likeCount" validate:"omitempty,gte=0"`
}

type SyncItem struct {
	ProductID     ident.ProductID `json:"productId" validate:"required"`
	Name          string          `json:"name"`
	Price         int64           `json:"price" validate:"gte=0"`
	DiscountPrice *int64          `json:"discountPrice" validate:"omitempty,gte=0"`
	Image         string          `json:"image"`
	AddedAt       time.Time       `json:"addedAt"`
}

// SyncRequest is the server's view of the wishlist.
type SyncRequest struct {
	Items  []SyncItem     `json:"items" validate:"dive"`
	Counts map[string]int `json:"counts"`
}

// ==================== RESPONSE STRUCTS ====================

type WishlistItemResponse struct {
	ProductID     string    `json:"productId"`
	Name          string    `json:"name"`
	Price         int64     `json:"price"`
	DiscountPrice *int64    `json:"discountPrice,omitempty"`
	Image         string    `json:"image,omitempty"`
	AddedAt       time.Time `json:"addedAt"`
	State         State     `json:"state"`
	LikeCount     int       `json:"likeCount"`
}

type WishlistResponse struct {
	Items     []WishlistItemResponse `json:"items"`
	ItemCount int                    `json:"itemCount"`
	Counts    map[string]int         `json:"counts"`
}

type ToggleResponse struct {
	ProductID  string `json:"productId"`
	State      State  `json:"state"`
	Liked      bool   `json:"liked"`
	LikeCount  int    `json:"likeCount"`
	RolledBack bool   `json:"rolledBack"`
	Stale      bool   `json:"stale"`
}
