package types

// ActivitySlot is one scheduled visit inside a day plan.
type ActivitySlot struct {
	POIID     string  `json:"poi_id"`
	POIName   string  `json:"poi_name"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	CostUSD   float64 `json:"cost_usd"`
	Notes     string  `json:"notes,omitempty"`
}

// DayPlan is one day of a route.
type DayPlan struct {
	Day        int            `json:"day"`
	Theme      string         `json:"theme,omitempty"`
	Activities []ActivitySlot `json:"activities"`
	TotalCost  float64        `json:"total_cost"`
	TotalHours float64        `json:"total_hours"`
	Notes      string         `json:"notes,omitempty"`
}

// RouteOption is one generated trip variant.
type RouteOption struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DurationDays int       `json:"duration_days"`
	TotalCostUSD float64   `json:"total_cost_usd"`
	Style        string    `json:"style"`
	Days         []DayPlan `json:"days"`
	Highlights   []string  `json:"highlights,omitempty"`
	Warnings     []string  `json:"warnings,omitempty"`
}

// TemplateSlot is one slot of a pre-authored route template day. A slot is
// filled with the best unused POI matching Category or Tag.
type TemplateSlot struct {
	StartTime string `json:"start_time"`
	Category  string `json:"category,omitempty"`
	Tag       string `json:"tag,omitempty"`
	POIID     string `json:"poi_id,omitempty"`
}

// TemplateDay is one day of a route template.
type TemplateDay struct {
	Day   int            `json:"day"`
	Theme string         `json:"theme,omitempty"`
	Slots []TemplateSlot `json:"slots"`
}

// RouteTemplate is a pre-authored day-by-day trip outline.
type RouteTemplate struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	DurationDays int           `json:"duration_days"`
	Style        string        `json:"style"`
	Days         []TemplateDay `json:"days"`
}

// RetrievalResult pairs a POI with its relevance score.
type RetrievalResult struct {
	POI         *POI     `json:"poi"`
	Score       float64  `json:"score"`
	MatchedTags []string `json:"matched_tags,omitempty"`
}

// Evidence records what the planner grounded a set of routes on.
type Evidence struct {
	POIIDs          []string `json:"poi_ids"`
	TipsUsed        []string `json:"tips_used,omitempty"`
	RouteTemplateID string   `json:"route_template_id,omitempty"`
}

// Tip is one piece of embedded travel advice.
type Tip struct {
	Category string `json:"category"`
	Text     string `json:"text"`
	Season   string `json:"season,omitempty"`
}
