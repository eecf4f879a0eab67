package poi

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/dataset"
	"github.com/safar-uz/safar-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Filter narrows the dataset listing.
type Filter struct {
	Query    string
	Category string
	Tag      string
	MaxCost  float64
	Limit    int
}

// Service exposes read-only views over the reference POI dataset.
type Service interface {
	List(ctx context.Context, filter Filter) []types.POI
	Get(ctx context.Context, id string) (*types.POI, error)
	Stats(ctx context.Context) types.POIStats
}

type ServiceImpl struct {
	store  *dataset.Store
	logger *slog.Logger
}

func NewServiceImpl(store *dataset.Store, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		store:  store,
		logger: logger.With(slog.String("service", "poi")),
	}
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) []types.POI {
	_, span := otel.Tracer("POIService").Start(ctx, "List")
	defer span.End()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	var out []types.POI
	for _, p := range s.store.All() {
		if filter.Category != "" && !hasCategory(&p, filter.Category) {
			continue
		}
		if filter.Tag != "" && !p.HasTag(strings.ToLower(filter.Tag)) {
			continue
		}
		if filter.MaxCost > 0 && p.CostUSD > filter.MaxCost {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.SearchableText()), query) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	limit := filter.Limit
	if limit <= 0 || limit > len(out) {
		limit = len(out)
	}
	out = out[:limit]

	span.SetAttributes(attribute.Int("poi.count", len(out)))
	span.SetStatus(codes.Ok, "POIs listed")
	return out
}

func hasCategory(p *types.POI, category string) bool {
	for _, c := range p.Category {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (*types.POI, error) {
	_, span := otel.Tracer("POIService").Start(ctx, "Get")
	defer span.End()

	p, ok := s.store.GetByID(id)
	if !ok {
		span.SetAttributes(attribute.String("poi.id", id))
		return nil, api.ErrNotFound
	}
	span.SetStatus(codes.Ok, "POI fetched")
	return p, nil
}

func (s *ServiceImpl) Stats(ctx context.Context) types.POIStats {
	_, span := otel.Tracer("POIService").Start(ctx, "Stats")
	defer span.End()

	stats := s.store.Stats()
	span.SetStatus(codes.Ok, "Stats computed")
	return stats
}
