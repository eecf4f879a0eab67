package trips

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar-uz/safar-api/app/observability/metrics"
	"github.com/safar-uz/safar-api/internal/dataset"
	"github.com/safar-uz/safar-api/internal/types"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	metrics.InitAppMetrics()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := dataset.Load(logger)
	require.NoError(t, err)

	handler := NewHandler(NewServiceImpl(store, logger), logger)

	r := chi.NewRouter()
	r.Post("/trips/parse", handler.Parse)
	r.Post("/trips/plan", handler.Plan)
	r.Post("/trips/verify", handler.Verify)
	r.Get("/trips/tips", handler.Tips)
	return r
}

func postJSON(t *testing.T, router *chi.Mux, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestParse_ExtractsDaysAndBudget(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/trips/parse", map[string]string{
		"message": "3 days in Samarkand, budget $200, love history and mountains",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Request            *types.TripRequest `json:"request"`
		NeedsClarification bool               `json:"needs_clarification"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.False(t, result.NeedsClarification)
	require.NotNil(t, result.Request)
	assert.Equal(t, 3, result.Request.DurationDays)
	assert.InDelta(t, 200, result.Request.BudgetUSD, 0.001)
	assert.Contains(t, result.Request.Interests, "history")
}

func TestParse_GreetingAsksForClarification(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/trips/parse", map[string]string{"message": "hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		NeedsClarification bool   `json:"needs_clarification"`
		Message            string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.NeedsClarification)
	assert.NotEmpty(t, result.Message)
}

func TestPlan_FromMessageProducesVerifiedRoutes(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/trips/plan", map[string]string{
		"message": "2 days in Samarkand with $150 for history and architecture",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotEmpty(t, resp.Routes)
	require.Len(t, resp.Reports, len(resp.Routes))
	assert.NotEmpty(t, resp.Evidence.POIIDs)
	require.NotEmpty(t, resp.Tips)

	require.NotEmpty(t, resp.Evidence.TipsUsed)
	assert.LessOrEqual(t, len(resp.Evidence.TipsUsed), 5)
	assert.Equal(t, resp.Tips[0].Text, resp.Evidence.TipsUsed[0])

	for _, route := range resp.Routes {
		assert.Equal(t, 2, route.DurationDays)
		assert.Len(t, route.Days, 2)
		var sum float64
		for _, day := range route.Days {
			sum += day.TotalCost
		}
		assert.InDelta(t, sum, route.TotalCostUSD, 0.001)
	}
}

func TestPlan_StructuredRequestIsCachedOnRepeat(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]any{
		"request": types.TripRequest{
			City:         "Samarkand",
			DurationDays: 2,
			BudgetUSD:    120,
			Interests:    []string{"history"},
		},
	}

	first := postJSON(t, router, "/trips/plan", body)
	require.Equal(t, http.StatusOK, first.Code)
	var firstResp PlanResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	assert.False(t, firstResp.Cached)

	second := postJSON(t, router, "/trips/plan", body)
	require.Equal(t, http.StatusOK, second.Code)
	var secondResp PlanResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
	assert.True(t, secondResp.Cached)
	assert.Equal(t, firstResp.Routes, secondResp.Routes)
}

func TestPlan_MessagePatchesStructuredRequest(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/trips/plan", map[string]any{
		"request": types.TripRequest{
			City:         "Samarkand",
			DurationDays: 2,
			BudgetUSD:    100,
			Interests:    []string{"history"},
		},
		"message": "actually make it $300",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Request)
	assert.InDelta(t, 300, resp.Request.BudgetUSD, 0.001)
	assert.Equal(t, 2, resp.Request.DurationDays)
}

func TestPlan_EmptyBodyRejected(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/trips/plan", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerify_ReportsInfeasibleBudget(t *testing.T) {
	router := newTestRouter(t)

	route := types.RouteOption{
		ID:           "test_route",
		Name:         "Overpriced day",
		DurationDays: 1,
		TotalCostUSD: 90,
		Style:        "moderate",
		Days: []types.DayPlan{
			{
				Day: 1,
				Activities: []types.ActivitySlot{
					{POIID: "seven_lakes_fann_mountains", POIName: "Seven Lakes", StartTime: "07:00", EndTime: "17:00", CostUSD: 40},
					{POIID: "zarafshan_gorge_day_trip", POIName: "Zarafshan Gorge", StartTime: "17:30", EndTime: "21:30", CostUSD: 50},
				},
				TotalCost:  90,
				TotalHours: 14,
			},
		},
	}
	request := types.TripRequest{
		City:         "Samarkand",
		DurationDays: 1,
		BudgetUSD:    50,
		Interests:    []string{"nature"},
	}

	rec := postJSON(t, router, "/trips/verify", map[string]any{"route": route, "request": request})
	require.Equal(t, http.StatusOK, rec.Code)

	var report types.VerificationReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.IsFeasible)
	assert.False(t, report.BudgetCheck.Passed)
}

func TestTips_FilteredByInterests(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/trips/tips?interests=photography&budget=60", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var tips []types.Tip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tips))
	require.NotEmpty(t, tips)

	var hasPhoto bool
	for _, tip := range tips {
		if strings.EqualFold(tip.Category, "photography") {
			hasPhoto = true
		}
	}
	assert.True(t, hasPhoto)
}
