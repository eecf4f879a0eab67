package hotels

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

// Service defines the business logic contract for hotel operations.
type Service interface {
	List(ctx context.Context, filter types.HotelFilter) ([]types.Hotel, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Hotel, error)
	Create(ctx context.Context, req types.CreateHotelRequest) (*types.Hotel, error)
	Update(ctx context.Context, id uuid.UUID, req types.CreateHotelRequest) (*types.Hotel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("service", "hotels")),
	}
}

func (s *ServiceImpl) List(ctx context.Context, filter types.HotelFilter) ([]types.Hotel, error) {
	ctx, span := otel.Tracer("HotelsService").Start(ctx, "List")
	defer span.End()

	hotels, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list hotels", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("hotels.count", len(hotels)))
	span.SetStatus(codes.Ok, "Hotels listed")
	return hotels, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id uuid.UUID) (*types.Hotel, error) {
	ctx, span := otel.Tracer("HotelsService").Start(ctx, "Get")
	defer span.End()

	hotel, err := s.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return hotel, nil
}

func (s *ServiceImpl) Create(ctx context.Context, req types.CreateHotelRequest) (*types.Hotel, error) {
	ctx, span := otel.Tracer("HotelsService").Start(ctx, "Create")
	defer span.End()

	hotel, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create hotel", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Hotel created")
	return hotel, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, req types.CreateHotelRequest) (*types.Hotel, error) {
	ctx, span := otel.Tracer("HotelsService").Start(ctx, "Update")
	defer span.End()

	hotel, err := s.repo.Update(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Hotel updated")
	return hotel, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("HotelsService").Start(ctx, "Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetStatus(codes.Ok, "Hotel deleted")
	return nil
}
