package places

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/safar-uz/safar-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for place operations. The
// store is a pass-through; no coordination logic lives here.
type Service interface {
	List(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Place, error)
	Create(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error)
	Update(ctx context.Context, id uuid.UUID, req types.CreatePlaceRequest) (*types.Place, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("service", "places")),
	}
}

func (s *ServiceImpl) List(ctx context.Context, filter types.PlaceFilter) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "List", trace.WithAttributes(
		attribute.String("filter.category", filter.Category),
	))
	defer span.End()

	places, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list places", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("places.count", len(places)))
	span.SetStatus(codes.Ok, "Places listed")
	return places, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id uuid.UUID) (*types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Get")
	defer span.End()

	place, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return place, nil
}

func (s *ServiceImpl) Create(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Create")
	defer span.End()

	place, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create place", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Place created")
	return place, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, req types.CreatePlaceRequest) (*types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Update")
	defer span.End()

	place, err := s.repo.Update(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Place updated")
	return place, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetStatus(codes.Ok, "Place deleted")
	return nil
}
