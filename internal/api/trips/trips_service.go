package trips

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/safar-uz/safar-api/app/observability/metrics"
	"github.com/safar-uz/safar-api/internal/dataset"
	"github.com/safar-uz/safar-api/internal/intake"
	"github.com/safar-uz/safar-api/internal/planner"
	"github.com/safar-uz/safar-api/internal/retrieval"
	"github.com/safar-uz/safar-api/internal/types"
	"github.com/safar-uz/safar-api/internal/verifier"
)

const (
	retrievalLimit  = 25
	planCacheTTL    = 10 * time.Minute
	maxEvidenceTips = 5
)

var _ Service = (*ServiceImpl)(nil)

// PlanResponse is the full pipeline output for one trip request.
type PlanResponse struct {
	Request  *types.TripRequest         `json:"request"`
	Routes   []types.RouteOption        `json:"routes"`
	Reports  []types.VerificationReport `json:"reports"`
	Evidence types.Evidence             `json:"evidence"`
	Tips     []types.Tip                `json:"tips"`
	Cached   bool                       `json:"cached"`
}

// Service runs the trip pipeline: intake, retrieval, planning, verification.
type Service interface {
	Parse(ctx context.Context, message string) intake.Result
	Patch(ctx context.Context, req types.TripRequest, message string) types.TripRequest
	Plan(ctx context.Context, req *types.TripRequest) (*PlanResponse, error)
	PlanFromMessage(ctx context.Context, message string) (*PlanResponse, *intake.Result, error)
	Verify(ctx context.Context, route *types.RouteOption, req *types.TripRequest) types.VerificationReport
	Tips(ctx context.Context, interests []string, budget float64) []types.Tip
}

type ServiceImpl struct {
	parser    *intake.Parser
	retriever *retrieval.Retriever
	planner   *planner.Planner
	verifier  *verifier.Verifier
	store     *dataset.Store
	cache     *cache.Cache
	logger    *slog.Logger
}

func NewServiceImpl(store *dataset.Store, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		parser:    intake.NewParser(logger),
		retriever: retrieval.NewRetriever(store, logger),
		planner:   planner.New(store, logger),
		verifier:  verifier.New(store, logger),
		store:     store,
		cache:     cache.New(planCacheTTL, 2*planCacheTTL),
		logger:    logger.With(slog.String("service", "trips")),
	}
}

func (s *ServiceImpl) Parse(ctx context.Context, message string) intake.Result {
	_, span := otel.Tracer("TripsService").Start(ctx, "Parse")
	defer span.End()

	result := s.parser.Parse(message)
	span.SetAttributes(attribute.Bool("intake.needs_clarification", result.NeedsClarification))
	span.SetStatus(codes.Ok, "Message parsed")
	return result
}

// Patch applies a free-text correction to an existing request.
func (s *ServiceImpl) Patch(ctx context.Context, req types.TripRequest, message string) types.TripRequest {
	_, span := otel.Tracer("TripsService").Start(ctx, "Patch")
	defer span.End()

	patched := s.parser.ApplyPatch(req, message)
	span.SetStatus(codes.Ok, "Request patched")
	return patched
}

// Plan runs retrieval, planning and verification for a structured request.
// Identical requests within the cache TTL return the cached plan.
func (s *ServiceImpl) Plan(ctx context.Context, req *types.TripRequest) (*PlanResponse, error) {
	ctx, span := otel.Tracer("TripsService").Start(ctx, "Plan")
	defer span.End()
	start := time.Now()

	key, err := requestKey(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if hit, ok := s.cache.Get(key); ok {
		cached := hit.(PlanResponse)
		cached.Cached = true
		span.SetAttributes(attribute.Bool("plan.cache_hit", true))
		span.SetStatus(codes.Ok, "Plan served from cache")
		return &cached, nil
	}

	retrievalStart := time.Now()
	results := s.retriever.Search(req, retrievalLimit)
	metrics.Get().RetrievalDurationSeconds.Record(ctx, time.Since(retrievalStart).Seconds())

	plan := s.planner.Build(req, results)

	reports := make([]types.VerificationReport, 0, len(plan.Routes))
	for i := range plan.Routes {
		reports = append(reports, s.verifier.Verify(&plan.Routes[i], req))
	}

	tips := s.retriever.TipsFor(req)
	resp := PlanResponse{
		Request:  req,
		Routes:   plan.Routes,
		Reports:  reports,
		Evidence: plan.Evidence,
		Tips:     tips,
	}
	resp.Evidence.TipsUsed = tipTexts(tips, maxEvidenceTips)
	s.cache.SetDefault(key, resp)

	metrics.Get().PlanRequestsTotal.Add(ctx, 1)
	metrics.Get().PlanDurationSeconds.Record(ctx, time.Since(start).Seconds())

	span.SetAttributes(
		attribute.Int("plan.routes", len(resp.Routes)),
		attribute.Int("retrieval.results", len(results)),
	)
	span.SetStatus(codes.Ok, "Plan generated")
	return &resp, nil
}

// PlanFromMessage parses a free-text message and, unless clarification is
// needed, plans from the extracted request.
func (s *ServiceImpl) PlanFromMessage(ctx context.Context, message string) (*PlanResponse, *intake.Result, error) {
	result := s.Parse(ctx, message)
	if result.NeedsClarification {
		return nil, &result, nil
	}
	resp, err := s.Plan(ctx, result.Request)
	if err != nil {
		return nil, nil, err
	}
	return resp, &result, nil
}

func (s *ServiceImpl) Verify(ctx context.Context, route *types.RouteOption, req *types.TripRequest) types.VerificationReport {
	_, span := otel.Tracer("TripsService").Start(ctx, "Verify")
	defer span.End()

	report := s.verifier.Verify(route, req)
	span.SetAttributes(
		attribute.Bool("verify.feasible", report.IsFeasible),
		attribute.Float64("verify.score", report.OverallScore),
	)
	span.SetStatus(codes.Ok, "Route verified")
	return report
}

func (s *ServiceImpl) Tips(ctx context.Context, interests []string, budget float64) []types.Tip {
	_, span := otel.Tracer("TripsService").Start(ctx, "Tips")
	defer span.End()

	req := &types.TripRequest{
		City:         "Samarkand",
		DurationDays: 2,
		BudgetUSD:    budget,
		Interests:    interests,
	}
	if budget <= 0 {
		req.BudgetUSD = 100
	}
	tips := s.retriever.TipsFor(req)
	span.SetAttributes(attribute.Int("tips.count", len(tips)))
	span.SetStatus(codes.Ok, "Tips collected")
	return tips
}

func tipTexts(tips []types.Tip, limit int) []string {
	var out []string
	for _, tip := range tips {
		out = append(out, tip.Text)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// requestKey produces a stable cache key for a normalized request.
func requestKey(req *types.TripRequest) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("hashing trip request: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
