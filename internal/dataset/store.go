// Package dataset loads the embedded reference data (POIs, route templates,
// travel tips) and exposes read-only lookups over it.
package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/safar-uz/safar-api/internal/types"
)

//go:embed data/*.json
var dataFS embed.FS

// Store holds the reference dataset in memory. It is populated once by Load
// and never mutated afterwards, so it is safe for concurrent readers.
type Store struct {
	pois      []types.POI
	byID      map[string]*types.POI
	templates []types.RouteTemplate
	tips      []types.Tip
	logger    *slog.Logger
}

// Load reads and validates the embedded dataset.
func Load(logger *slog.Logger) (*Store, error) {
	s := &Store{
		byID:   make(map[string]*types.POI),
		logger: logger,
	}

	if err := loadJSON("data/poi.json", &s.pois); err != nil {
		return nil, err
	}
	if err := loadJSON("data/templates.json", &s.templates); err != nil {
		return nil, err
	}
	if err := loadJSON("data/tips.json", &s.tips); err != nil {
		return nil, err
	}

	for i := range s.pois {
		p := &s.pois[i]
		if p.ID == "" {
			return nil, fmt.Errorf("dataset: POI at index %d has no id", i)
		}
		if p.CostUSD < 0 {
			return nil, fmt.Errorf("dataset: POI %q has negative cost", p.ID)
		}
		if p.DurationHours < 0 {
			return nil, fmt.Errorf("dataset: POI %q has negative duration", p.ID)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("dataset: duplicate POI id %q", p.ID)
		}
		s.byID[p.ID] = p
	}

	logger.Info("Reference dataset loaded",
		slog.Int("pois", len(s.pois)),
		slog.Int("templates", len(s.templates)),
		slog.Int("tips", len(s.tips)),
	)
	return s, nil
}

func loadJSON(name string, dst interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("dataset: reading %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("dataset: parsing %s: %w", name, err)
	}
	return nil
}

// All returns every POI in a stable order.
func (s *Store) All() []types.POI {
	return s.pois
}

// GetByID returns the POI with the given id. Lookup is tolerant: ids are
// normalized (lower case, spaces and dashes to underscores) and, failing an
// exact match, a substring match against ids and names is attempted.
func (s *Store) GetByID(id string) (*types.POI, bool) {
	norm := normalizeID(id)
	if p, ok := s.byID[norm]; ok {
		return p, true
	}
	for i := range s.pois {
		p := &s.pois[i]
		if strings.Contains(p.ID, norm) ||
			strings.Contains(strings.ToLower(p.Name), strings.ReplaceAll(norm, "_", " ")) ||
			strings.Contains(strings.ToLower(p.NameEN), strings.ReplaceAll(norm, "_", " ")) {
			return p, true
		}
	}
	return nil, false
}

func normalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, "-", "_")
	return id
}

// MustSee returns all POIs tagged must_see.
func (s *Store) MustSee() []*types.POI {
	var out []*types.POI
	for i := range s.pois {
		if s.pois[i].HasTag("must_see") {
			out = append(out, &s.pois[i])
		}
	}
	return out
}

// MountainOptions returns mountain-tagged POIs long enough to fill a
// dedicated day (>= 4h), longest first.
func (s *Store) MountainOptions() []*types.POI {
	var out []*types.POI
	for i := range s.pois {
		p := &s.pois[i]
		if p.HasAnyTag("mountains", "lake") && p.DurationHours >= 4 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DurationHours != out[j].DurationHours {
			return out[i].DurationHours > out[j].DurationHours
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ByCategory returns POIs carrying the given category.
func (s *Store) ByCategory(category string) []*types.POI {
	category = strings.ToLower(category)
	var out []*types.POI
	for i := range s.pois {
		for _, c := range s.pois[i].Category {
			if c == category {
				out = append(out, &s.pois[i])
				break
			}
		}
	}
	return out
}

// Tips returns all embedded tips.
func (s *Store) Tips() []types.Tip {
	return s.tips
}

// TipsByCategory returns at most limit tips of the given category.
func (s *Store) TipsByCategory(category string, limit int) []types.Tip {
	var out []types.Tip
	for _, t := range s.tips {
		if t.Category == category {
			out = append(out, t)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Templates returns all route templates.
func (s *Store) Templates() []types.RouteTemplate {
	return s.templates
}

// TemplateFor returns the template matching the day count and style, if any.
func (s *Store) TemplateFor(durationDays int, style string) (*types.RouteTemplate, bool) {
	for i := range s.templates {
		t := &s.templates[i]
		if t.DurationDays == durationDays && t.Style == style {
			return t, true
		}
	}
	return nil, false
}

// Stats summarizes the dataset.
func (s *Store) Stats() types.POIStats {
	stats := types.POIStats{
		TotalPOIs:  len(s.pois),
		ByCategory: make(map[string]int),
	}
	var costSum, durSum float64
	for i := range s.pois {
		p := &s.pois[i]
		for _, c := range p.Category {
			stats.ByCategory[c]++
		}
		if p.CostUSD == 0 {
			stats.FreeCount++
		}
		if p.HasTag("must_see") {
			stats.MustSeeCount++
		}
		costSum += p.CostUSD
		durSum += p.DurationHours
	}
	if len(s.pois) > 0 {
		stats.AvgCostUSD = costSum / float64(len(s.pois))
		stats.AvgDurationHr = durSum / float64(len(s.pois))
	}
	return stats
}
