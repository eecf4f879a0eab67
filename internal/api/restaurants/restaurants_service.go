package restaurants

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/safar-uz/safar-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for restaurant operations.
type Service interface {
	List(ctx context.Context, filter types.RestaurantFilter) ([]types.Restaurant, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Restaurant, error)
	Create(ctx context.Context, req types.CreateRestaurantRequest) (*types.Restaurant, error)
	Update(ctx context.Context, id uuid.UUID, req types.CreateRestaurantRequest) (*types.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("service", "restaurants")),
	}
}

func (s *ServiceImpl) List(ctx context.Context, filter types.RestaurantFilter) ([]types.Restaurant, error) {
	ctx, span := otel.Tracer("RestaurantsService").Start(ctx, "List")
	defer span.End()

	restaurants, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list restaurants", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("restaurants.count", len(restaurants)))
	span.SetStatus(codes.Ok, "Restaurants listed")
	return restaurants, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id uuid.UUID) (*types.Restaurant, error) {
	ctx, span := otel.Tracer("RestaurantsService").Start(ctx, "Get")
	defer span.End()

	rest, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return rest, nil
}

func (s *ServiceImpl) Create(ctx context.Context, req types.CreateRestaurantRequest) (*types.Restaurant, error) {
	ctx, span := otel.Tracer("RestaurantsService").Start(ctx, "Create")
	defer span.End()

	rest, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create restaurant", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Restaurant created")
	return rest, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, req types.CreateRestaurantRequest) (*types.Restaurant, error) {
	ctx, span := otel.Tracer("RestaurantsService").Start(ctx, "Update")
	defer span.End()

	rest, err := s.repo.Update(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Restaurant updated")
	return rest, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("RestaurantsService").Start(ctx, "Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetStatus(codes.Ok, "Restaurant deleted")
	return nil
}
