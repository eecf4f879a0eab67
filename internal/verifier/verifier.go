// Package verifier runs deterministic feasibility checks over a generated
// route: budget, daily time load, explicit constraints and physical level.
package verifier

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/safar-uz/safar-api/internal/dataset"
	"github.com/safar-uz/safar-api/internal/types"
)

const (
	foodPerDayBudget   = 10.0
	foodPerDayRegular  = 20.0
	totalChecks        = 4
	maxRecommendations = 4
)

var paceMaxHours = map[types.Pace]float64{
	types.PaceRelaxed:   6,
	types.PaceModerate:  8,
	types.PaceIntensive: 10,
}

// Verifier checks routes against the request they were generated for.
type Verifier struct {
	store  *dataset.Store
	logger *slog.Logger
}

func New(store *dataset.Store, logger *slog.Logger) *Verifier {
	return &Verifier{
		store:  store,
		logger: logger.With(slog.String("component", "verifier")),
	}
}

// Verify produces a feasibility report. The same route and request always
// yield an identical report.
func (v *Verifier) Verify(route *types.RouteOption, req *types.TripRequest) types.VerificationReport {
	report := types.VerificationReport{
		BudgetCheck:      v.checkBudget(route, req),
		TimeCheck:        v.checkTime(route, req),
		ConstraintsCheck: v.checkConstraints(route, req),
		PhysicalCheck:    v.checkPhysical(route, req),
	}

	passed := 0
	for _, c := range []types.CheckResult{report.BudgetCheck, report.TimeCheck, report.ConstraintsCheck, report.PhysicalCheck} {
		if c.Passed {
			passed++
		} else {
			report.Issues = append(report.Issues, c.Message)
		}
	}
	report.OverallScore = float64(passed) / totalChecks
	report.IsFeasible = report.BudgetCheck.Passed && report.ConstraintsCheck.Passed

	report.AutoFixes = v.suggestFixes(route, req, &report)
	report.Recommendations = v.recommend(route, req)

	v.logger.Debug("Route verified",
		slog.String("route", route.ID),
		slog.Bool("feasible", report.IsFeasible),
		slog.Float64("score", report.OverallScore),
	)
	return report
}

func (v *Verifier) checkBudget(route *types.RouteOption, req *types.TripRequest) types.CheckResult {
	foodPerDay := foodPerDayRegular
	if req.BudgetStyle == types.BudgetStyleBudget {
		foodPerDay = foodPerDayBudget
	}
	foodTotal := foodPerDay * float64(req.DurationDays)
	total := route.TotalCostUSD + foodTotal

	details := map[string]string{
		"activities_usd": fmt.Sprintf("%.2f", route.TotalCostUSD),
		"food_usd":       fmt.Sprintf("%.2f", foodTotal),
		"total_usd":      fmt.Sprintf("%.2f", total),
		"budget_usd":     fmt.Sprintf("%.2f", req.BudgetUSD),
	}

	if total > req.BudgetUSD {
		details["overshoot_usd"] = fmt.Sprintf("%.2f", total-req.BudgetUSD)
		return types.CheckResult{
			Passed:  false,
			Message: fmt.Sprintf("estimated cost $%.0f exceeds budget $%.0f", total, req.BudgetUSD),
			Details: details,
		}
	}
	details["remaining_usd"] = fmt.Sprintf("%.2f", req.BudgetUSD-total)
	return types.CheckResult{
		Passed:  true,
		Message: fmt.Sprintf("within budget, about $%.0f to spare", req.BudgetUSD-total),
		Details: details,
	}
}

func (v *Verifier) checkTime(route *types.RouteOption, req *types.TripRequest) types.CheckResult {
	maxHours, ok := paceMaxHours[req.Pace]
	if !ok {
		maxHours = paceMaxHours[types.PaceModerate]
	}

	for _, day := range route.Days {
		if day.TotalHours > maxHours {
			return types.CheckResult{
				Passed: false,
				Message: fmt.Sprintf("day %d has %.1fh of activities, above the %s pace limit of %.0fh",
					day.Day, day.TotalHours, req.Pace, maxHours),
				Details: map[string]string{
					"day":       fmt.Sprintf("%d", day.Day),
					"hours":     fmt.Sprintf("%.1f", day.TotalHours),
					"max_hours": fmt.Sprintf("%.0f", maxHours),
				},
			}
		}
	}
	return types.CheckResult{
		Passed:  true,
		Message: fmt.Sprintf("daily load fits the %s pace", req.Pace),
	}
}

func (v *Verifier) checkConstraints(route *types.RouteOption, req *types.TripRequest) types.CheckResult {
	for _, c := range req.Constraints {
		switch c.Type {
		case types.ConstraintMountainDay:
			if !v.mountainDaySatisfied(route, c.Day) {
				return types.CheckResult{
					Passed:  false,
					Message: fmt.Sprintf("requested mountains on day %d but the route has none", c.Day),
					Details: map[string]string{"day": fmt.Sprintf("%d", c.Day)},
				}
			}
		case types.ConstraintDeparture:
			if !departureSatisfied(route, c.Value) {
				return types.CheckResult{
					Passed:  false,
					Message: fmt.Sprintf("departure at %s requested but no activity starts at that time", c.Value),
					Details: map[string]string{"time": c.Value},
				}
			}
		}
		// Unknown constraint types pass.
	}
	return types.CheckResult{Passed: true, Message: "all explicit constraints satisfied"}
}

func (v *Verifier) mountainDaySatisfied(route *types.RouteOption, day int) bool {
	for _, d := range route.Days {
		if d.Day != day {
			continue
		}
		for _, act := range d.Activities {
			if poi, ok := v.store.GetByID(act.POIID); ok {
				if poi.HasAnyTag("mountains", "lake", "nature") {
					return true
				}
				continue
			}
			// Unknown IDs fall back to name matching.
			name := strings.ToLower(act.POIName)
			if strings.Contains(name, "mountain") || strings.Contains(name, "lake") {
				return true
			}
		}
	}
	return false
}

// An early departure is only satisfied by an activity starting exactly at
// the requested time; a routine 09:00 city start does not count.
func departureSatisfied(route *types.RouteOption, hhmm string) bool {
	for _, d := range route.Days {
		for _, act := range d.Activities {
			if act.StartTime == hhmm {
				return true
			}
		}
	}
	return false
}

func (v *Verifier) checkPhysical(route *types.RouteOption, req *types.TripRequest) types.CheckResult {
	if req.PhysicalLevel != "low" {
		return types.CheckResult{Passed: true, Message: "physical load acceptable"}
	}
	for _, day := range route.Days {
		for _, act := range day.Activities {
			if poi, ok := v.store.GetByID(act.POIID); ok && poi.PhysicalLevel == "high" {
				return types.CheckResult{
					Passed:  false,
					Message: fmt.Sprintf("%s is physically demanding but a low physical level was requested", poi.Name),
					Details: map[string]string{"poi_id": poi.ID},
				}
			}
		}
	}
	return types.CheckResult{Passed: true, Message: "physical load acceptable"}
}

// suggestFixes proposes concrete changes for each failed check.
func (v *Verifier) suggestFixes(route *types.RouteOption, req *types.TripRequest, report *types.VerificationReport) []string {
	var fixes []string

	if !report.BudgetCheck.Passed {
		if fix := v.cheaperSwap(route); fix != "" {
			fixes = append(fixes, fix)
		} else {
			fixes = append(fixes, "drop the most expensive activity to get back under budget")
		}
	}
	if !report.TimeCheck.Passed {
		fixes = append(fixes, "remove one activity from the overloaded day or switch to a faster pace")
	}
	if !report.ConstraintsCheck.Passed {
		if opts := v.store.MountainOptions(); len(opts) > 0 {
			fixes = append(fixes, fmt.Sprintf("add %s as a dedicated mountain day", opts[0].Name))
		}
	}
	if !report.PhysicalCheck.Passed {
		fixes = append(fixes, "replace the demanding excursion with a city walk")
	}
	return fixes
}

// cheaperSwap finds the most expensive activity and a cheaper POI sharing a
// category with it.
func (v *Verifier) cheaperSwap(route *types.RouteOption) string {
	var expensive *types.ActivitySlot
	for i := range route.Days {
		for j := range route.Days[i].Activities {
			act := &route.Days[i].Activities[j]
			if expensive == nil || act.CostUSD > expensive.CostUSD {
				expensive = act
			}
		}
	}
	if expensive == nil || expensive.CostUSD == 0 {
		return ""
	}

	poi, ok := v.store.GetByID(expensive.POIID)
	if !ok || len(poi.Category) == 0 {
		return ""
	}

	candidates := v.store.ByCategory(poi.Category[0])
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].CostUSD != candidates[j].CostUSD {
			return candidates[i].CostUSD < candidates[j].CostUSD
		}
		return candidates[i].ID < candidates[j].ID
	})
	for _, cand := range candidates {
		if cand.ID != poi.ID && cand.CostUSD < poi.CostUSD {
			return fmt.Sprintf("swap %s ($%.0f) for %s ($%.0f)",
				poi.Name, poi.CostUSD, cand.Name, cand.CostUSD)
		}
	}
	return ""
}

func (v *Verifier) recommend(route *types.RouteOption, req *types.TripRequest) []string {
	var recs []string

	var totalHours float64
	mountainDay := false
	for _, day := range route.Days {
		totalHours += day.TotalHours
		if day.Theme == "Mountains" {
			mountainDay = true
		}
		for _, act := range day.Activities {
			if poi, ok := v.store.GetByID(act.POIID); ok && poi.HasTag("mountains") {
				mountainDay = true
			}
		}
	}

	if totalHours > 12 {
		recs = append(recs, "bring comfortable walking shoes, this is a busy route")
	}
	if mountainDay {
		recs = append(recs, "pack a jacket and at least two litres of water for the mountain day")
	}
	if req.BudgetUSD < 100 {
		recs = append(recs, "chaikhanas near Siab Bazaar serve a full lunch for under $5")
	}
	recs = append(recs, "monuments are quietest in the first hour after opening, best for photos")

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
