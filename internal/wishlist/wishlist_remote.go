package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Remote is the backend that durably stores likes. A false result or an
// error means the change was not accepted.
//
//go:generate mockgen -source=wishlist_remote.go -destination=../mock/wishlist/wishlist_remote_mock.go -package=mock
type Remote interface {
	AddToWishlist(ctx context.Context, productID string) (bool, error)
	RemoveFromWishlist(ctx context.Context, productID string) (bool, error)
}

type accessTokenKey struct{}

// WithAccessToken attaches the caller's token so HTTPRemote can forward it.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func accessToken(ctx context.Context) string {
	v, _ := ctx.Value(accessTokenKey{}).(string)
	return v
}

// HTTPRemote talks to the backend wishlist endpoints:
// POST/DELETE {base}/wishlists/items/{productId}.
type HTTPRemote struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRemote(baseURL string, timeout time.Duration) *HTTPRemote {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPRemote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *HTTPRemote) AddToWishlist(ctx context.Context, productID string) (bool, error) {
	return r.do(ctx, http.MethodPost, productID)
}

func (r *HTTPRemote) RemoveFromWishlist(ctx context.Context, productID string) (bool, error) {
	return r.do(ctx, http.MethodDelete, productID)
}

type remoteEnvelope struct {
	Success bool `json:"success"`
}

func (r *HTTPRemote) do(ctx context.Context, method, productID string) (bool, error) {
	endpoint := r.baseURL + "/wishlists/items/" + url.PathEscape(productID)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build wishlist request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := accessToken(ctx); token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("wishlist %s %s: %w", method, productID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, fmt.Errorf("read wishlist response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("wishlist %s %s: status %d", method, productID, resp.StatusCode)
	}

	var env remoteEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return false, fmt.Errorf("decode wishlist response: %w", err)
	}
	return env.Success, nil
}
