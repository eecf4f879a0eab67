// Package retrieval ranks reference POIs against a trip request: a strict
// metadata pre-filter followed by similarity scoring with fixed boosts.
package retrieval

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/safar-uz/safar-api/internal/dataset"
	"github.com/safar-uz/safar-api/internal/types"
)

// A single POI may take at most this share of the daily budget.
const maxCostShare = 0.30

// FilterCriteria are the hard constraints derived from a request. A POI
// violating any of them never appears in results, whatever its score.
type FilterCriteria struct {
	MaxCostUSD       float64
	MaxDurationHours float64
	Categories       []string
	ExcludeTags      []string
	RequireMountains bool
}

// CriteriaFor derives filter criteria from a trip request.
func CriteriaFor(req *types.TripRequest) FilterCriteria {
	c := FilterCriteria{
		MaxCostUSD:       req.DailyBudget() * maxCostShare,
		MaxDurationHours: 10,
		Categories:       req.Interests,
		ExcludeTags:      req.Avoid,
		RequireMountains: req.MountainConstraint() != nil,
	}
	// A dedicated mountain day must be affordable even when single-POI cost
	// would normally be capped lower.
	if c.RequireMountains && c.MaxCostUSD < 40 {
		c.MaxCostUSD = req.DailyBudget()
	}
	return c
}

// Retriever performs filtered similarity search over the reference dataset.
type Retriever struct {
	store  *dataset.Store
	logger *slog.Logger

	// POI vectors are precomputed once; the dataset is immutable.
	vectors map[string][]float64
}

func NewRetriever(store *dataset.Store, logger *slog.Logger) *Retriever {
	r := &Retriever{
		store:   store,
		logger:  logger.With(slog.String("component", "retrieval")),
		vectors: make(map[string][]float64),
	}
	for i := range store.All() {
		p := &store.All()[i]
		r.vectors[p.ID] = embed(p.SearchableText())
	}
	return r
}

// Search returns up to limit POIs matching the request, best first. The
// metadata filter is applied before any scoring.
func (r *Retriever) Search(req *types.TripRequest, limit int) []types.RetrievalResult {
	criteria := CriteriaFor(req)
	query := queryText(req)
	queryVec := embed(query)

	var results []types.RetrievalResult
	pois := r.store.All()
	for i := range pois {
		p := &pois[i]
		if !passesFilter(p, criteria) {
			continue
		}
		score := cosine(queryVec, r.vectors[p.ID])
		score, matched := applyBoosts(score, p, req, criteria)
		results = append(results, types.RetrievalResult{
			POI:         p,
			Score:       score,
			MatchedTags: matched,
		})
	}

	// Ties broken by ID so the ordering is total and reproducible.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].POI.ID < results[j].POI.ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	r.logger.Debug("Retrieval complete",
		slog.Int("candidates", len(pois)),
		slog.Int("results", len(results)),
		slog.Float64("max_cost", criteria.MaxCostUSD),
	)
	return results
}

func queryText(req *types.TripRequest) string {
	parts := append([]string{req.City}, req.Interests...)
	for _, c := range req.Constraints {
		if c.Type == types.ConstraintMountainDay {
			parts = append(parts, "mountains", "nature", "hiking")
		}
	}
	parts = append(parts, req.MustVisit...)
	return strings.Join(parts, " ")
}

func passesFilter(p *types.POI, c FilterCriteria) bool {
	if p.CostUSD > c.MaxCostUSD {
		return false
	}
	if c.MaxDurationHours > 0 && p.DurationHours > c.MaxDurationHours {
		return false
	}
	for _, tag := range c.ExcludeTags {
		if p.HasTag(strings.ToLower(tag)) {
			return false
		}
	}
	return true
}

func applyBoosts(score float64, p *types.POI, req *types.TripRequest, c FilterCriteria) (float64, []string) {
	var matched []string
	if p.HasTag("must_see") {
		score += 0.3
		matched = append(matched, "must_see")
	}
	if p.HasTag("unesco") {
		score += 0.2
		matched = append(matched, "unesco")
	}
	if p.CostUSD == 0 {
		score += 0.1
		matched = append(matched, "free")
	}
	if c.RequireMountains && p.HasAnyTag("mountains", "lake") {
		score += 0.5
		matched = append(matched, "mountains")
	}
	if req.HasInterest("photography") && p.HasTag("photography") {
		score += 0.1
		matched = append(matched, "photography")
	}
	if score > 1.0 {
		score = 1.0
	}
	return score, matched
}

// TipsFor selects travel advice relevant to the request: two general tips
// always, then category tips keyed on budget and interests, plus the
// seasonal tip matching the start date when one is set.
func (r *Retriever) TipsFor(req *types.TripRequest) []types.Tip {
	tips := r.store.TipsByCategory("general", 2)

	if req.BudgetUSD < 80 {
		tips = append(tips, r.store.TipsByCategory("budget", 2)...)
	}
	if req.MountainConstraint() != nil || req.HasInterest("nature") {
		tips = append(tips, r.store.TipsByCategory("mountains", 2)...)
	}
	if req.HasInterest("photography") {
		tips = append(tips, r.store.TipsByCategory("photography", 1)...)
	}
	if req.HasInterest("food") {
		tips = append(tips, r.store.TipsByCategory("food", 1)...)
	}
	if season := seasonOf(req.StartDate); season != "" {
		for _, tip := range r.store.TipsByCategory("seasonal", 0) {
			if tip.Season == season {
				tips = append(tips, tip)
			}
		}
	}
	return tips
}

func seasonOf(startDate string) string {
	date, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return ""
	}
	switch date.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}
