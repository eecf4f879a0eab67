package retrieval

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar-uz/safar-api/internal/dataset"
	"github.com/safar-uz/safar-api/internal/types"
)

func newTestRetriever(t *testing.T) *Retriever {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := dataset.Load(logger)
	require.NoError(t, err)
	return NewRetriever(store, logger)
}

func baseRequest() *types.TripRequest {
	return &types.TripRequest{
		City:          "Samarkand",
		DurationDays:  2,
		BudgetUSD:     100,
		Interests:     []string{"history", "architecture"},
		Pace:          types.PaceModerate,
		BudgetStyle:   types.BudgetStyleModerate,
		PhysicalLevel: "moderate",
	}
}

func TestSearch_HardCostFilter(t *testing.T) {
	r := newTestRetriever(t)
	req := baseRequest()

	results := r.Search(req, 0)
	require.NotEmpty(t, results)

	maxCost := req.DailyBudget() * maxCostShare
	for _, res := range results {
		assert.LessOrEqual(t, res.POI.CostUSD, maxCost,
			"POI %s exceeds the per-POI cost cap", res.POI.ID)
	}
}

func TestSearch_ExcludeTags(t *testing.T) {
	r := newTestRetriever(t)
	req := baseRequest()
	req.BudgetUSD = 1000
	req.Avoid = []string{"shopping"}

	for _, res := range r.Search(req, 0) {
		assert.False(t, res.POI.HasTag("shopping"),
			"excluded tag leaked through the filter: %s", res.POI.ID)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	r := newTestRetriever(t)
	req := baseRequest()

	first := r.Search(req, 10)
	second := r.Search(req, 10)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].POI.ID, second[i].POI.ID)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestSearch_MustSeeRanksHigh(t *testing.T) {
	r := newTestRetriever(t)
	req := baseRequest()

	results := r.Search(req, 5)
	require.NotEmpty(t, results)

	var sawMustSee bool
	for _, res := range results {
		if res.POI.HasTag("must_see") {
			sawMustSee = true
			break
		}
	}
	assert.True(t, sawMustSee, "top results should contain a must-see POI")
}

func TestSearch_MountainBoost(t *testing.T) {
	r := newTestRetriever(t)
	req := baseRequest()
	req.BudgetUSD = 400
	req.DurationDays = 3
	req.Interests = []string{"nature"}
	req.Constraints = []types.Constraint{{Type: types.ConstraintMountainDay, Day: 2}}

	results := r.Search(req, 5)
	require.NotEmpty(t, results)
	assert.True(t, results[0].POI.HasAnyTag("mountains", "lake"),
		"mountain constraint should push mountain POIs to the top, got %s", results[0].POI.ID)
}

func TestSearch_ScoreBounds(t *testing.T) {
	r := newTestRetriever(t)

	for _, res := range r.Search(baseRequest(), 0) {
		assert.GreaterOrEqual(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 1.0)
	}
}

func TestTipsFor(t *testing.T) {
	r := newTestRetriever(t)

	t.Run("always general", func(t *testing.T) {
		tips := r.TipsFor(baseRequest())
		require.NotEmpty(t, tips)
		assert.Equal(t, "general", tips[0].Category)
	})

	t.Run("budget tips for small budgets", func(t *testing.T) {
		req := baseRequest()
		req.BudgetUSD = 60
		var categories []string
		for _, tip := range r.TipsFor(req) {
			categories = append(categories, tip.Category)
		}
		assert.Contains(t, categories, "budget")
	})

	t.Run("mountain tips for nature trips", func(t *testing.T) {
		req := baseRequest()
		req.Interests = []string{"nature"}
		var categories []string
		for _, tip := range r.TipsFor(req) {
			categories = append(categories, tip.Category)
		}
		assert.Contains(t, categories, "mountains")
	})

	t.Run("seasonal tip matches start date", func(t *testing.T) {
		req := baseRequest()
		req.StartDate = "2026-07-15"
		var seasons []string
		for _, tip := range r.TipsFor(req) {
			if tip.Category == "seasonal" {
				seasons = append(seasons, tip.Season)
			}
		}
		assert.Equal(t, []string{"summer"}, seasons)
	})

	t.Run("no seasonal tip without start date", func(t *testing.T) {
		for _, tip := range r.TipsFor(baseRequest()) {
			assert.NotEqual(t, "seasonal", tip.Category)
		}
	})
}

func TestEmbedDeterministic(t *testing.T) {
	a := embed("registan square history architecture")
	b := embed("registan square history architecture")
	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, cosine(a, b), 1e-9)
}
