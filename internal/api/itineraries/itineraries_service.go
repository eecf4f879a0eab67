package itineraries

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

// Service defines the business logic contract for saved itineraries.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]types.Itinerary, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*types.Itinerary, error)
	Create(ctx context.Context, userID uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error)
	Update(ctx context.Context, userID, id uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("service", "itineraries")),
	}
}

func (s *ServiceImpl) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]types.Itinerary, error) {
	ctx, span := otel.Tracer("ItinerariesService").Start(ctx, "List")
	defer span.End()

	items, err := s.repo.List(ctx, userID, limit, offset)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("itineraries.count", len(items)))
	span.SetStatus(codes.Ok, "Itineraries listed")
	return items, nil
}

func (s *ServiceImpl) Get(ctx context.Context, userID, id uuid.UUID) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItinerariesService").Start(ctx, "Get")
	defer span.End()

	it, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return it, nil
}

func (s *ServiceImpl) Create(ctx context.Context, userID uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItinerariesService").Start(ctx, "Create")
	defer span.End()

	it, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create itinerary", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("itinerary.id", it.ID.String()))
	span.SetStatus(codes.Ok, "Itinerary created")
	return it, nil
}

func (s *ServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItinerariesService").Start(ctx, "Update")
	defer span.End()

	it, err := s.repo.Update(ctx, userID, id, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Itinerary updated")
	return it, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := otel.Tracer("ItinerariesService").Start(ctx, "Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetStatus(codes.Ok, "Itinerary deleted")
	return nil
}
