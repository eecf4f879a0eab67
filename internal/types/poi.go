package types

import "strings"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// POI is one record of the embedded reference dataset. The dataset is loaded
// once at startup and treated as read-only afterwards.
type POI struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	NameEN        string       `json:"name_en,omitempty"`
	Category      []string     `json:"category"`
	Description   string       `json:"description"`
	CostUSD       float64      `json:"cost_usd"`
	DurationHours float64      `json:"duration_hours"`
	BestTime      string       `json:"best_time,omitempty"`
	OpeningHours  string       `json:"opening_hours,omitempty"`
	District      string       `json:"district,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	Tags          []string     `json:"tags"`
	Tips          []string     `json:"tips,omitempty"`
	PhysicalLevel string       `json:"physical_level,omitempty"`
	Requirements  []string     `json:"requirements,omitempty"`
}

// SearchableText concatenates the fields used for similarity ranking.
func (p *POI) SearchableText() string {
	parts := []string{p.Name, p.NameEN, p.Description, p.District}
	parts = append(parts, p.Category...)
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Tips...)
	return strings.ToLower(strings.Join(parts, " "))
}

// HasTag reports whether the POI carries the given tag.
func (p *POI) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the POI carries at least one of the given tags.
func (p *POI) HasAnyTag(tags ...string) bool {
	for _, t := range tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}

// IsDayTrip reports whether the POI cannot fit inside a regular city day.
func (p *POI) IsDayTrip() bool {
	return p.HasTag("day_trip") || p.DurationHours >= 5
}

// POIStats summarizes the reference dataset.
type POIStats struct {
	TotalPOIs     int            `json:"total_pois"`
	ByCategory    map[string]int `json:"by_category"`
	FreeCount     int            `json:"free_count"`
	MustSeeCount  int            `json:"must_see_count"`
	AvgCostUSD    float64        `json:"avg_cost_usd"`
	AvgDurationHr float64        `json:"avg_duration_hours"`
}
