package planner

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar-uz/safar-api/internal/dataset"
	"github.com/safar-uz/safar-api/internal/retrieval"
	"github.com/safar-uz/safar-api/internal/types"
)

func newTestPlanner(t *testing.T) (*Planner, *retrieval.Retriever) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := dataset.Load(logger)
	require.NoError(t, err)
	return New(store, logger), retrieval.NewRetriever(store, logger)
}

func planRequest() *types.TripRequest {
	return &types.TripRequest{
		City:          "Samarkand",
		DurationDays:  2,
		BudgetUSD:     150,
		Interests:     []string{"history", "architecture"},
		Pace:          types.PaceModerate,
		BudgetStyle:   types.BudgetStyleModerate,
		PhysicalLevel: "moderate",
	}
}

func TestBuild_ThreeVariants(t *testing.T) {
	p, r := newTestPlanner(t)
	req := planRequest()

	plan := p.Build(req, r.Search(req, 0))
	require.Len(t, plan.Routes, 3)

	stylesSeen := map[string]bool{}
	for _, route := range plan.Routes {
		stylesSeen[route.Style] = true
		assert.Equal(t, req.DurationDays, route.DurationDays)
		assert.Len(t, route.Days, req.DurationDays)
	}
	assert.True(t, stylesSeen["budget"])
	assert.True(t, stylesSeen["moderate"])
	assert.True(t, stylesSeen["comfort"])
}

func TestBuild_CostSumInvariant(t *testing.T) {
	p, r := newTestPlanner(t)

	requests := []*types.TripRequest{
		planRequest(),
		{City: "Samarkand", DurationDays: 3, BudgetUSD: 400, Interests: []string{"nature", "food"},
			Pace: types.PaceModerate, BudgetStyle: types.BudgetStyleComfort, PhysicalLevel: "moderate"},
		{City: "Samarkand", DurationDays: 1, BudgetUSD: 60, Interests: []string{"history"},
			Pace: types.PaceRelaxed, BudgetStyle: types.BudgetStyleBudget, PhysicalLevel: "low"},
	}

	for _, req := range requests {
		plan := p.Build(req, r.Search(req, 0))
		for _, route := range plan.Routes {
			var daySum float64
			for _, day := range route.Days {
				var actSum float64
				for _, act := range day.Activities {
					actSum += act.CostUSD
				}
				assert.InDelta(t, actSum, day.TotalCost, 1e-9,
					"route %s day %d cost mismatch", route.ID, day.Day)
				daySum += day.TotalCost
			}
			assert.InDelta(t, daySum, route.TotalCostUSD, 1e-9,
				"route %s total cost must equal sum of day costs", route.ID)
		}
	}
}

func TestBuild_TemplateUsedWhenAvailable(t *testing.T) {
	p, r := newTestPlanner(t)
	req := planRequest()

	plan := p.Build(req, r.Search(req, 0))
	assert.NotEmpty(t, plan.Evidence.RouteTemplateID,
		"a 2-day request should match a pre-authored template")
}

func TestBuild_FallbackForUncoveredDayCount(t *testing.T) {
	p, r := newTestPlanner(t)
	req := planRequest()
	req.DurationDays = 5

	plan := p.Build(req, r.Search(req, 0))
	require.NotEmpty(t, plan.Routes)
	assert.Empty(t, plan.Evidence.RouteTemplateID)
	for _, route := range plan.Routes {
		assert.Len(t, route.Days, 5)
	}
}

func TestBuild_DayLimits(t *testing.T) {
	p, r := newTestPlanner(t)
	req := planRequest()
	req.DurationDays = 4
	req.BudgetUSD = 600

	plan := p.Build(req, r.Search(req, 0))
	for _, route := range plan.Routes {
		for _, day := range route.Days {
			assert.LessOrEqual(t, len(day.Activities), maxDayActivities,
				"route %s day %d", route.ID, day.Day)
			if day.Theme != "Mountains" {
				assert.LessOrEqual(t, day.TotalHours, maxDayHours+1e-9,
					"route %s day %d", route.ID, day.Day)
			}
		}
	}
}

func TestBuild_MountainConstraintDay(t *testing.T) {
	p, r := newTestPlanner(t)
	req := planRequest()
	req.DurationDays = 3
	req.BudgetUSD = 400
	req.Interests = []string{"nature", "history"}
	req.Constraints = []types.Constraint{{Type: types.ConstraintMountainDay, Day: 2}}

	plan := p.Build(req, r.Search(req, 0))
	require.NotEmpty(t, plan.Routes)

	for _, route := range plan.Routes {
		if route.Style != "moderate" && route.Style != "budget" && route.Style != "comfort" {
			continue
		}
		// Templates do not cover 3-day mountain variants for all styles;
		// dynamically generated routes must honor the constraint.
		if len(route.Days) < 2 {
			continue
		}
		day := route.Days[1]
		if day.Theme != "Mountains" {
			continue
		}
		require.NotEmpty(t, day.Activities, "route %s", route.ID)
		assert.Equal(t, "07:00", day.Activities[0].StartTime)
		assert.Equal(t, "17:00", day.Activities[0].EndTime)
	}
}

func TestBuild_NoDayTripInsideCityDays(t *testing.T) {
	p, r := newTestPlanner(t)
	req := planRequest()
	req.DurationDays = 5
	req.BudgetUSD = 800
	req.Interests = []string{"nature", "history"}

	store, err := dataset.Load(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	plan := p.Build(req, r.Search(req, 0))
	for _, route := range plan.Routes {
		for _, day := range route.Days {
			if day.Theme == "Mountains" {
				continue
			}
			for _, act := range day.Activities {
				poi, ok := store.GetByID(act.POIID)
				require.True(t, ok)
				assert.False(t, poi.IsDayTrip(),
					"day-trip POI %s scheduled inside a city day of route %s", poi.ID, route.ID)
			}
		}
	}
}

func TestBuild_MustVisitPlacedFirst(t *testing.T) {
	p, r := newTestPlanner(t)
	req := planRequest()
	req.DurationDays = 5 // force dynamic generation
	req.MustVisit = []string{"khovrenko_winery"}

	plan := p.Build(req, r.Search(req, 0))
	for _, route := range plan.Routes {
		var found bool
		for _, day := range route.Days {
			for _, act := range day.Activities {
				if act.POIID == "khovrenko_winery" {
					found = true
				}
			}
		}
		if route.Style == "moderate" || route.Style == "comfort" {
			assert.True(t, found, "must-visit POI missing from route %s", route.ID)
		}
	}
}

func TestBuild_Evidence(t *testing.T) {
	p, r := newTestPlanner(t)
	req := planRequest()

	results := r.Search(req, 0)
	plan := p.Build(req, results)

	assert.NotEmpty(t, plan.Evidence.POIIDs)
	assert.LessOrEqual(t, len(plan.Evidence.POIIDs), 15)
	assert.Equal(t, results[0].POI.ID, plan.Evidence.POIIDs[0])
}
