package wishlist

import (
	"context"

	"go-cart-api/internal/pkg/ident"
	"go-cart-api/internal/pkg/logger"
	"go-cart-api/internal/pkg/money"
	"go-cart-api/internal/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

//go:generate mockgen -source=wishlist_service.go -destination=../mock/wishlist/wishlist_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, sessionID string) (WishlistResponse, error)
	Toggle(ctx context.Context, sessionID, productID string, req ToggleRequest) (ToggleResponse, error)
	Sync(ctx context.Context, sessionID string, req SyncRequest) (WishlistResponse, error)
}

type Deps struct {
	Store     storage.Store
	Remote    Remote
	CacheSize int
	Logger    *zap.Logger
}

type service struct {
	stores   *storage.SessionCache[*ToggleStore]
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Store == nil {
		panic("wishlist store cannot be nil")
	}
	if deps.Remote == nil {
		panic("wishlist remote cannot be nil")
	}
	l := logger.OrNop(deps.Logger).Named("wishlist")

	stores, err := storage.NewSessionCache(deps.CacheSize, func(sessionID string) *ToggleStore {
		return NewToggleStore(deps.Store, sessionID, deps.Remote, l)
	})
	if err != nil {
		panic(err)
	}

	return &service{
		stores:   stores,
		validate: validator.New(),
		logger:   l,
	}
}

func (s *service) store(sessionID string) (*ToggleStore, func(), error) {
	if sessionID == "" {
		return nil, nil, ErrMissingSession
	}
	st, release := s.stores.Acquire(sessionID)
	return st, release, nil
}

func (s *service) List(ctx context.Context, sessionID string) (WishlistResponse, error) {
	st, release, err := s.store(sessionID)
	if err != nil {
		return WishlistResponse{}, err
	}
	defer release()
	return s.toResponse(ctx, st), nil
}

func (s *service) Toggle(ctx context.Context, sessionID, productID string, req ToggleRequest) (ToggleResponse, error) {
	pid, err := ident.Normalize(productID)
	if err != nil {
		return ToggleResponse{}, ErrInvalidProductID
	}
	if err := s.validate.Struct(req); err != nil {
		return ToggleResponse{}, ErrInvalidProductID.WithCause(err)
	}

	st, release, err := s.store(sessionID)
	if err != nil {
		return ToggleResponse{}, err
	}
	defer release()

	if req.LikeCount != nil {
		st.SeedCount(pid.String(), *req.LikeCount)
	}

	res, err := st.Toggle(ctx, Entry{
		ProductID:     pid.String(),
		Name:          req.Name,
		Price:         money.Money(req.Price),
		DiscountPrice: toMoneyPtr(req.DiscountPrice),
		Image:         req.Image,
	})
	if err != nil {
		return toToggleResponse(res), err
	}

	s.logger.Debug("wishlist toggled",
		zap.String("session_id", sessionID),
		zap.String("product_id", res.ProductID),
		zap.Bool("liked", res.Liked),
		zap.Bool("stale", res.Stale),
	)
	return toToggleResponse(res), nil
}

func (s *service) Sync(ctx context.Context, sessionID string, req SyncRequest) (WishlistResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return WishlistResponse{}, ErrInvalidProductID.WithCause(err)
	}

	st, release, err := s.store(sessionID)
	if err != nil {
		return WishlistResponse{}, err
	}
	defer release()

	entries := make([]Entry, 0, len(req.Items))
	for _, it := range req.Items {
		entries = append(entries, Entry{
			ProductID:     it.ProductID.String(),
			Name:          it.Name,
			Price:         money.Money(it.Price),
			DiscountPrice: toMoneyPtr(it.DiscountPrice),
			Image:         it.Image,
			AddedAt:       it.AddedAt,
		})
	}
	st.Sync(ctx, entries, req.Counts)

	return s.toResponse(ctx, st), nil
}

func (s *service) toResponse(ctx context.Context, st *ToggleStore) WishlistResponse {
	entries := st.Entries(ctx)
	counts := st.Counts()

	items := make([]WishlistItemResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, WishlistItemResponse{
			ProductID:     e.ProductID,
			Name:          e.Name,
			Price:         e.Price.Int64(),
			DiscountPrice: fromMoneyPtr(e.DiscountPrice),
			Image:         e.Image,
			AddedAt:       e.AddedAt,
			State:         st.State(ctx, e.ProductID),
			LikeCount:     counts[e.ProductID],
		})
	}

	return WishlistResponse{
		Items:     items,
		ItemCount: len(items),
		Counts:    counts,
	}
}

func toToggleResponse(r ToggleResult) ToggleResponse {
	return ToggleResponse{
		ProductID:  r.ProductID,
		State:      r.State,
		Liked:      r.Liked,
		LikeCount:  r.LikeCount,
		RolledBack: r.RolledBack,
		Stale:      r.Stale,
	}
}

func toMoneyPtr(v *int64) *money.Money {
	if v == nil {
		return nil
	}
	m := money.Money(max(0, *v))
	return &m
}

func fromMoneyPtr(m *money.Money) *int64 {
	if m == nil {
		return nil
	}
	v := m.Int64()
	return &v
}
