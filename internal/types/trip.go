package types

// Pace controls how many hours of activities fit into a day.
type Pace string

const (
	PaceRelaxed   Pace = "relaxed"
	PaceModerate  Pace = "moderate"
	PaceIntensive Pace = "intensive"
)

// BudgetStyle selects how aggressively the planner spends the budget.
type BudgetStyle string

const (
	BudgetStyleBudget   BudgetStyle = "budget"
	BudgetStyleModerate BudgetStyle = "moderate"
	BudgetStyleComfort  BudgetStyle = "comfort"
)

// Constraint is an explicit user requirement extracted from free text,
// e.g. mountains on a specific day or an early departure.
type Constraint struct {
	Type  string `json:"type"`
	Day   int    `json:"day,omitempty"`
	Value string `json:"value,omitempty"`
}

const (
	ConstraintMountainDay = "mountain_day"
	ConstraintDeparture   = "departure_time"
)

// TripRequest is the normalized form of a free-text trip message.
type TripRequest struct {
	City           string       `json:"city"`
	DurationDays   int          `json:"duration_days" validate:"min=1,max=14"`
	BudgetUSD      float64      `json:"budget_usd" validate:"min=10"`
	Interests      []string     `json:"interests"`
	Constraints    []Constraint `json:"constraints,omitempty"`
	StartDate      string       `json:"start_date,omitempty"`
	TravelersCount int          `json:"travelers_count"`
	Pace           Pace         `json:"pace"`
	BudgetStyle    BudgetStyle  `json:"budget_style"`
	PhysicalLevel  string       `json:"physical_level"`
	MustVisit      []string     `json:"must_visit,omitempty"`
	Avoid          []string     `json:"avoid,omitempty"`
	Language       string       `json:"language,omitempty"`
}

// DailyBudget returns the per-day budget share.
func (r *TripRequest) DailyBudget() float64 {
	if r.DurationDays <= 0 {
		return r.BudgetUSD
	}
	return r.BudgetUSD / float64(r.DurationDays)
}

// MountainConstraint returns the mountain-day constraint, if any.
func (r *TripRequest) MountainConstraint() *Constraint {
	for i := range r.Constraints {
		if r.Constraints[i].Type == ConstraintMountainDay {
			return &r.Constraints[i]
		}
	}
	return nil
}

// HasInterest reports whether the request names the given interest.
func (r *TripRequest) HasInterest(interest string) bool {
	for _, it := range r.Interests {
		if it == interest {
			return true
		}
	}
	return false
}
