package app

import (
	"time"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/config"
	"go-cart-api/internal/discount"
	"go-cart-api/internal/order"
	"go-cart-api/internal/outbox"
	"go-cart-api/internal/pkg/money"
	"go-cart-api/internal/pricing"
	"go-cart-api/internal/recentview"
	"go-cart-api/internal/wishlist"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type Modules struct {
	Cart       cart.Service
	Pricing    pricing.Service
	Wishlist   wishlist.Service
	RecentView recentview.Service
	Order      order.Service
}

// NewModules wires the services over infra. Without a database, discounts
// come from an empty static list and checkout clears the cart without the
// outbox.
func NewModules(cfg *config.Config, infra *Infra, log *zap.Logger) Modules {
	store, db := infra.Store, infra.DB

	// --- Repositories ---
	discountRepo := discount.NewStaticRepository(nil)
	var outboxRepo outbox.Repository
	if db != nil {
		discountRepo = discount.NewRepository(db)
		outboxRepo = outbox.NewRepository(db)
	}

	opts := []discount.ResolverOption{discount.WithTieBreak(discount.ParseTieBreak(cfg.DiscountTieBreak))}
	if cfg.DiscountEnforceValidity {
		opts = append(opts, discount.WithValidityWindow(time.Now))
	}

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		log.Warn("invalid locale, using default", zap.String("locale", cfg.Locale), zap.Error(err))
		locale = language.Und
	}

	// --- Services ---
	cartService := cart.NewService(cart.Deps{
		Store:     store,
		CacheSize: cfg.SessionCacheSize,
		Logger:    log,
	})
	pricingService := pricing.NewService(pricing.Deps{
		Cart:      cartService,
		Discounts: discountRepo,
		Resolver:  discount.NewResolver(opts...),
		Policy: &pricing.Policy{
			FreeShippingThreshold: money.Money(cfg.FreeShippingThreshold),
			ShippingFee:           money.Money(cfg.ShippingFee),
		},
		Locale: locale,
		Logger: log,
	})
	wishlistService := wishlist.NewService(wishlist.Deps{
		Store:     store,
		Remote:    wishlist.NewHTTPRemote(cfg.BackendBaseURL, cfg.BackendTimeout),
		CacheSize: cfg.SessionCacheSize,
		Logger:    log,
	})
	orderService := order.NewService(order.Deps{
		Store:      store,
		Cart:       cartService,
		Pricing:    pricingService,
		OutboxRepo: outboxRepo,
		CacheSize:  cfg.SessionCacheSize,
		Logger:     log,
	})

	return Modules{
		Cart:       cartService,
		Pricing:    pricingService,
		Wishlist:   wishlistService,
		RecentView: recentview.NewService(recentview.Deps{
			Store:     store,
			Limit:     cfg.RecentViewLimit,
			CacheSize: cfg.SessionCacheSize,
			Logger:    log,
		}),
		Order:      orderService,
	}
}

func registerRoutes(api *gin.RouterGroup, m Modules, rdb *redis.Client, log *zap.Logger) {
	cart.RegisterRoutes(api, cart.NewHandler(m.Cart))
	pricing.RegisterRoutes(api, pricing.NewHandler(m.Pricing))
	wishlist.RegisterRoutes(api, wishlist.NewHandler(m.Wishlist, log))
	recentview.RegisterRoutes(api, recentview.NewHandler(m.RecentView))
	order.RegisterRoutes(api, order.NewHandler(m.Order, rdb, log), rdb)
}
