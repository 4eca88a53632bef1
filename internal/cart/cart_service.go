package cart

import (
	"context"

	"go-cart-api/internal/pkg/ident"
	"go-cart-api/internal/pkg/logger"
	"go-cart-api/internal/pkg/money"
	"go-cart-api/internal/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

//go:generate mockgen -source=cart_service.go -destination=../mock/cart/cart_service_mock.go -package=mock
type Service interface {
	Detail(ctx context.Context, sessionID string) (CartDetailResponse, error)
	Snapshot(ctx context.Context, sessionID string) (Snapshot, error)

	AddItem(ctx context.Context, sessionID string, req AddItemRequest) (CartItemResponse, error)
	ChangeQty(ctx context.Context, sessionID, productID string, req ChangeQtyRequest) (ChangeQtyResponse, error)

	DeleteItem(ctx context.Context, sessionID, productID, size string) error
	RemoveItems(ctx context.Context, sessionID string, keys []Key) error
	Clear(ctx context.Context, sessionID string) error

	SelectAll(ctx context.Context, sessionID string, req SelectAllRequest) (SelectionResponse, error)
	ToggleSelection(ctx context.Context, sessionID string, req ToggleSelectionRequest) (SelectionResponse, error)
}

type Deps struct {
	Store     storage.Store
	CacheSize int
	Logger    *zap.Logger
}

type service struct {
	stores   *storage.SessionCache[*Store]
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Store == nil {
		panic("cart store cannot be nil")
	}
	l := logger.OrNop(deps.Logger).Named("cart")

	stores, err := storage.NewSessionCache(deps.CacheSize, func(sessionID string) *Store {
		return NewStore(deps.Store, sessionID, l)
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

// ========================
// helpers
// ========================

// store pins the session's Store; callers defer release.
func (s *service) store(sessionID string) (*Store, func(), error) {
	if sessionID == "" {
		return nil, nil, ErrMissingSession
	}
	st, release := s.stores.Acquire(sessionID)
	return st, release, nil
}

func (s *service) parseProductID(productID string) (string, error) {
	id, err := ident.Normalize(productID)
	if err != nil {
		return "", ErrInvalidProductID
	}
	return id.String(), nil
}

func (s *service) Detail(ctx context.Context, sessionID string) (CartDetailResponse, error) {
	snap, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		return CartDetailResponse{}, err
	}

	selected := make(map[Key]struct{}, len(snap.Selection))
	for _, k := range snap.Selection {
		selected[k] = struct{}{}
	}

	items := make([]CartItemResponse, 0, len(snap.Items))
	for _, it := range snap.Items {
		_, ok := selected[it.Key()]
		items = append(items, toItemResponse(it, ok))
	}

	return CartDetailResponse{
		Items:       items,
		ItemCount:   len(items),
		AllSelected: snap.AllSelected,
	}, nil
}

func (s *service) Snapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	st, release, err := s.store(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	defer release()
	return st.Snapshot(ctx), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (CartItemResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return CartItemResponse{}, ErrInvalidItem.WithCause(err)
	}

	st, release, err := s.store(sessionID)
	if err != nil {
		return CartItemResponse{}, err
	}
	defer release()

	price, err := money.New(req.Price)
	if err != nil {
		return CartItemResponse{}, ErrInvalidItem.WithCause(err)
	}

	item, err := st.Add(ctx, LineItem{
		ProductID: req.ProductID.String(),
		Size:      req.Size,
		UnitPrice: price,
		Name:      req.Name,
		Image:     req.Image,
		Category:  req.Category,
	}, req.Qty)
	if err != nil {
		return CartItemResponse{}, err
	}

	s.logger.Debug("cart item added",
		zap.String("session_id", sessionID),
		zap.String("product_id", item.ProductID),
		zap.Int("qty", item.Quantity),
	)
	return toItemResponse(item, false), nil
}

func (s *service) ChangeQty(ctx context.Context, sessionID, productID string, req ChangeQtyRequest) (ChangeQtyResponse, error) {
	if (req.Delta == nil) == (req.Value == nil) {
		return ChangeQtyResponse{}, ErrInvalidQtyChange
	}

	pid, err := s.parseProductID(productID)
	if err != nil {
		return ChangeQtyResponse{}, err
	}

	st, release, err := s.store(sessionID)
	if err != nil {
		return ChangeQtyResponse{}, err
	}
	defer release()
	key := Key{ProductID: pid, Size: req.Size}

	if req.Delta != nil {
		item, err := st.ChangeQuantity(ctx, key, *req.Delta)
		if err != nil {
			return ChangeQtyResponse{}, err
		}
		return ChangeQtyResponse{Item: toItemResponse(item, false), Accepted: true}, nil
	}

	item, accepted, err := st.SetQuantity(ctx, key, *req.Value)
	if err != nil {
		return ChangeQtyResponse{}, err
	}
	return ChangeQtyResponse{Item: toItemResponse(item, false), Accepted: accepted}, nil
}

func (s *service) DeleteItem(ctx context.Context, sessionID, productID, size string) error {
	pid, err := s.parseProductID(productID)
	if err != nil {
		return err
	}

	st, release, err := s.store(sessionID)
	if err != nil {
		return err
	}
	defer release()
	return st.Remove(ctx, Key{ProductID: pid, Size: size})
}

// RemoveItems drops the given keys, ignoring those already gone. Used after checkout.
func (s *service) RemoveItems(ctx context.Context, sessionID string, keys []Key) error {
	st, release, err := s.store(sessionID)
	if err != nil {
		return err
	}
	defer release()

	removed := st.RemoveMany(ctx, keys)
	s.logger.Info("cart items removed",
		zap.String("session_id", sessionID),
		zap.Int("requested", len(keys)),
		zap.Int("removed", removed),
	)
	return nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	st, release, err := s.store(sessionID)
	if err != nil {
		return err
	}
	defer release()
	st.Clear(ctx)
	return nil
}

func (s *service) SelectAll(ctx context.Context, sessionID string, req SelectAllRequest) (SelectionResponse, error) {
	st, release, err := s.store(sessionID)
	if err != nil {
		return SelectionResponse{}, err
	}
	defer release()

	keys := st.SelectAll(ctx, req.All)
	return SelectionResponse{
		Selection:   keys,
		AllSelected: st.AllSelected(ctx),
	}, nil
}

func (s *service) ToggleSelection(ctx context.Context, sessionID string, req ToggleSelectionRequest) (SelectionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return SelectionResponse{}, ErrInvalidProductID
	}

	st, release, err := s.store(sessionID)
	if err != nil {
		return SelectionResponse{}, err
	}
	defer release()

	if _, err := st.Toggle(ctx, Key{ProductID: req.ProductID.String(), Size: req.Size}); err != nil {
		return SelectionResponse{}, err
	}

	snap := st.Snapshot(ctx)
	return SelectionResponse{
		Selection:   snap.Selection,
		AllSelected: snap.AllSelected,
	}, nil
}
