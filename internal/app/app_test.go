package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cart-api/internal/config"
	"go-cart-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.StoreBackend = "memory"
	cfg.AppEnv = "development"

	r := gin.New()
	cleanup, err := BuildApp(r, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return r
}

func TestBuildApp_MemoryBackend(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// guest cookie issued on first request, reused after
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"productId":1,"price":10000,"qty":2,"name":"mug"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mug"`)
}

func TestOpenStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.StoreBackend = "memory"

		store, rdb, err := openStore(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, rdb)

		require.NoError(t, store.Set(context.Background(), "k", "v"))
		_, err = store.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.StoreBackend = "etcd"

		_, _, err := openStore(cfg, zap.NewNop())
		assert.Error(t, err)
	})
}
