// Package planner assembles day-by-day route options from retrieved POIs,
// using pre-authored templates when one fits and greedy generation otherwise.
package planner

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/safar-uz/safar-api/internal/dataset"
	"github.com/safar-uz/safar-api/internal/types"
)

const (
	cityDayStart     = "09:00"
	mountainDayStart = "07:00"
	mountainDayEnd   = "17:00"
	gapMinutes       = 30
	maxDayHours      = 7.0
	maxDayActivities = 6
	minTemplateDay   = 2
)

// styleSpec describes one of the three generated variants.
type styleSpec struct {
	name        string // RouteOption style
	displayName string
	dailyShare  float64 // multiplier on budget/days
	preferFree  bool
}

var styles = []styleSpec{
	{name: "budget", displayName: "Shoestring", dailyShare: 0.5, preferFree: true},
	{name: "moderate", displayName: "Balanced", dailyShare: 0.8},
	{name: "comfort", displayName: "Comfort", dailyShare: 1.2},
}

// Plan is the full output for one request: up to three route variants plus
// the evidence they were grounded on.
type Plan struct {
	Routes   []types.RouteOption `json:"routes"`
	Evidence types.Evidence      `json:"evidence"`
}

// Planner builds route options.
type Planner struct {
	store  *dataset.Store
	logger *slog.Logger
}

func New(store *dataset.Store, logger *slog.Logger) *Planner {
	return &Planner{
		store:  store,
		logger: logger.With(slog.String("component", "planner")),
	}
}

// Build generates one route variant per style from the retrieval results.
func (p *Planner) Build(req *types.TripRequest, results []types.RetrievalResult) Plan {
	plan := Plan{}

	for _, style := range styles {
		route, templateID := p.buildRoute(req, results, style)
		if route != nil {
			plan.Routes = append(plan.Routes, *route)
			if templateID != "" && plan.Evidence.RouteTemplateID == "" {
				plan.Evidence.RouteTemplateID = templateID
			}
		}
	}

	for i, res := range results {
		if i >= 15 {
			break
		}
		plan.Evidence.POIIDs = append(plan.Evidence.POIIDs, res.POI.ID)
	}

	p.logger.Debug("Plan built",
		slog.Int("routes", len(plan.Routes)),
		slog.String("template", plan.Evidence.RouteTemplateID),
	)
	return plan
}

func (p *Planner) buildRoute(req *types.TripRequest, results []types.RetrievalResult, style styleSpec) (*types.RouteOption, string) {
	if tpl, ok := p.store.TemplateFor(req.DurationDays, style.name); ok {
		if route := p.fromTemplate(req, results, style, tpl); route != nil {
			return route, tpl.ID
		}
	}
	return p.generate(req, results, style), ""
}

// fromTemplate fills a pre-authored template with the best available POIs.
// It returns nil when any day ends up with fewer than two activities, in
// which case the caller falls back to dynamic generation.
func (p *Planner) fromTemplate(req *types.TripRequest, results []types.RetrievalResult, style styleSpec, tpl *types.RouteTemplate) *types.RouteOption {
	used := make(map[string]bool)
	route := &types.RouteOption{
		ID:           fmt.Sprintf("%s_%s", tpl.ID, style.name),
		Name:         fmt.Sprintf("%s (%s)", tpl.Name, style.displayName),
		DurationDays: req.DurationDays,
		Style:        style.name,
	}

	for _, tplDay := range tpl.Days {
		day := types.DayPlan{Day: tplDay.Day, Theme: tplDay.Theme}
		for _, slot := range tplDay.Slots {
			poi := p.fillSlot(slot, results, used)
			if poi == nil {
				continue
			}
			used[poi.ID] = true
			day.Activities = append(day.Activities, activityFor(poi, slot.StartTime))
			day.TotalCost += poi.CostUSD
			day.TotalHours += poi.DurationHours
		}
		if len(day.Activities) < minTemplateDay {
			return nil
		}
		route.Days = append(route.Days, day)
		route.TotalCostUSD += day.TotalCost
	}

	route.Highlights = highlightsFor(route)
	return route
}

// fillSlot picks the POI for a template slot: the named POI when it survived
// filtering, otherwise the highest-scored unused result matching the slot's
// category or tag.
func (p *Planner) fillSlot(slot types.TemplateSlot, results []types.RetrievalResult, used map[string]bool) *types.POI {
	if slot.POIID != "" {
		for _, res := range results {
			if res.POI.ID == slot.POIID && !used[res.POI.ID] {
				return res.POI
			}
		}
	}
	want := slot.Category
	if want == "" {
		want = slot.Tag
	}
	if want == "" {
		return nil
	}
	for _, res := range results {
		if used[res.POI.ID] {
			continue
		}
		if res.POI.HasTag(want) || hasCategory(res.POI, want) {
			return res.POI
		}
	}
	return nil
}

// generate is the greedy fallback: fill each day from 09:00 with the best
// remaining POIs that fit the day's time and cost caps.
func (p *Planner) generate(req *types.TripRequest, results []types.RetrievalResult, style styleSpec) *types.RouteOption {
	dailyShare := req.DailyBudget() * style.dailyShare
	mountain := req.MountainConstraint()

	candidates := orderCandidates(req, results, style)
	used := make(map[string]bool)

	route := &types.RouteOption{
		ID:           fmt.Sprintf("dynamic_%dd_%s", req.DurationDays, style.name),
		Name:         fmt.Sprintf("%s %d-Day Route", style.displayName, req.DurationDays),
		DurationDays: req.DurationDays,
		Style:        style.name,
	}

	for dayNum := 1; dayNum <= req.DurationDays; dayNum++ {
		if mountain != nil && mountain.Day == dayNum {
			day := p.mountainDay(dayNum, style, used)
			route.Days = append(route.Days, day)
			route.TotalCostUSD += day.TotalCost
			continue
		}

		day := types.DayPlan{Day: dayNum}
		clock := newClock(cityDayStart)
		for _, poi := range candidates {
			if used[poi.ID] {
				continue
			}
			if poi.IsDayTrip() {
				continue
			}
			if day.TotalHours+poi.DurationHours > maxDayHours {
				continue
			}
			if len(day.Activities) >= maxDayActivities {
				break
			}
			if style.preferFree && day.TotalCost+poi.CostUSD > dailyShare {
				continue
			}
			used[poi.ID] = true
			start := clock.String()
			clock.advance(poi.DurationHours)
			end := clock.String()
			clock.advanceMinutes(gapMinutes)
			day.Activities = append(day.Activities, types.ActivitySlot{
				POIID:     poi.ID,
				POIName:   poi.Name,
				StartTime: start,
				EndTime:   end,
				CostUSD:   poi.CostUSD,
			})
			day.TotalCost += poi.CostUSD
			day.TotalHours += poi.DurationHours
		}
		route.Days = append(route.Days, day)
		route.TotalCostUSD += day.TotalCost
	}

	route.Highlights = highlightsFor(route)
	if mountain != nil && mountain.Day > req.DurationDays {
		route.Warnings = append(route.Warnings,
			fmt.Sprintf("mountain day %d is outside the %d-day trip", mountain.Day, req.DurationDays))
	}
	return route
}

// mountainDay builds a dedicated full-day mountain excursion. Budget style
// takes the cheapest option, the others the longest.
func (p *Planner) mountainDay(dayNum int, style styleSpec, used map[string]bool) types.DayPlan {
	options := p.store.MountainOptions()
	day := types.DayPlan{Day: dayNum, Theme: "Mountains"}

	var pick *types.POI
	if style.preferFree {
		for _, o := range options {
			if used[o.ID] {
				continue
			}
			if pick == nil || o.CostUSD < pick.CostUSD {
				pick = o
			}
		}
	} else {
		for _, o := range options {
			if !used[o.ID] {
				pick = o // options are sorted longest first
				break
			}
		}
	}
	if pick == nil {
		day.Notes = "No mountain excursion available"
		return day
	}

	used[pick.ID] = true
	day.Activities = append(day.Activities, types.ActivitySlot{
		POIID:     pick.ID,
		POIName:   pick.Name,
		StartTime: mountainDayStart,
		EndTime:   mountainDayEnd,
		CostUSD:   pick.CostUSD,
		Notes:     "Full-day excursion, transport included",
	})
	day.TotalCost = pick.CostUSD
	day.TotalHours = pick.DurationHours
	return day
}

// orderCandidates sorts results for greedy selection: must-visit POIs first,
// then free POIs for the budget style, then by score.
func orderCandidates(req *types.TripRequest, results []types.RetrievalResult, style styleSpec) []*types.POI {
	mustVisit := make(map[string]bool, len(req.MustVisit))
	for _, id := range req.MustVisit {
		mustVisit[strings.ToLower(id)] = true
	}

	sorted := make([]types.RetrievalResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		mi, mj := mustVisit[sorted[i].POI.ID], mustVisit[sorted[j].POI.ID]
		if mi != mj {
			return mi
		}
		if style.preferFree {
			fi, fj := sorted[i].POI.CostUSD == 0, sorted[j].POI.CostUSD == 0
			if fi != fj {
				return fi
			}
		}
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].POI.ID < sorted[j].POI.ID
	})

	out := make([]*types.POI, len(sorted))
	for i := range sorted {
		out[i] = sorted[i].POI
	}
	return out
}

func hasCategory(p *types.POI, category string) bool {
	for _, c := range p.Category {
		if c == category {
			return true
		}
	}
	return false
}

func activityFor(p *types.POI, start string) types.ActivitySlot {
	c := newClock(start)
	c.advance(p.DurationHours)
	return types.ActivitySlot{
		POIID:     p.ID,
		POIName:   p.Name,
		StartTime: start,
		EndTime:   c.String(),
		CostUSD:   p.CostUSD,
	}
}

func highlightsFor(route *types.RouteOption) []string {
	var out []string
	for _, day := range route.Days {
		for _, act := range day.Activities {
			if len(out) >= 3 {
				return out
			}
			out = append(out, act.POIName)
		}
	}
	return out
}

// clock is a minutes-since-midnight counter for building HH:MM slot times.
type clock struct {
	minutes int
}

func newClock(hhmm string) *clock {
	var h, m int
	fmt.Sscanf(hhmm, "%d:%d", &h, &m)
	return &clock{minutes: h*60 + m}
}

func (c *clock) advance(hours float64) {
	c.minutes += int(hours * 60)
}

func (c *clock) advanceMinutes(m int) {
	c.minutes += m
}

func (c *clock) String() string {
	return fmt.Sprintf("%02d:%02d", (c.minutes/60)%24, c.minutes%60)
}
