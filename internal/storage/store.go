// Package storage is the session-scoped key-value layer that stands in for the
// browser's localStorage. Values are plain JSON text.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("storage: key not found")

// Logical keys used by the front-end.
const (
	KeyCart       = "cart"
	KeySelection  = "selection"
	KeyWishlist   = "wishlist"
	KeyRecentView = "recentview"
	KeyOrders     = "orders"
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SessionKey namespaces a logical key for one session.
func SessionKey(sessionID, name string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, name)
}
