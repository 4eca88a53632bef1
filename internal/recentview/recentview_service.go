package recentview

import (
	"context"

	"go-cart-api/internal/pkg/logger"
	"go-cart-api/internal/pkg/money"
	"go-cart-api/internal/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, sessionID string) (ListResponse, error)
	Add(ctx context.Context, sessionID string, req AddRequest) (ListResponse, error)
	Clear(ctx context.Context, sessionID string) error
}

type Deps struct {
	Store     storage.Store
	Limit     int
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
		panic("recent view store cannot be nil")
	}
	l := logger.OrNop(deps.Logger).Named("recentview")

	stores, err := storage.NewSessionCache(deps.CacheSize, func(sessionID string) *Store {
		return NewStore(deps.Store, sessionID, deps.Limit, l)
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

func (s *service) store(sessionID string) (*Store, func(), error) {
	if sessionID == "" {
		return nil, nil, ErrMissingSession
	}
	st, release := s.stores.Acquire(sessionID)
	return st, release, nil
}

func (s *service) List(ctx context.Context, sessionID string) (ListResponse, error) {
	st, release, err := s.store(sessionID)
	if err != nil {
		return ListResponse{}, err
	}
	defer release()
	items := st.List(ctx)
	return ListResponse{Items: items, Count: len(items)}, nil
}

func (s *service) Add(ctx context.Context, sessionID string, req AddRequest) (ListResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return ListResponse{}, ErrInvalidItem.WithCause(err)
	}

	st, release, err := s.store(sessionID)
	if err != nil {
		return ListResponse{}, err
	}
	defer release()

	items := st.Add(ctx, Item{
		ProductID: req.ProductID.String(),
		Name:      req.Name,
		Price:     money.Money(req.Price),
		Image:     req.Image,
	})
	return ListResponse{Items: items, Count: len(items)}, nil
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
