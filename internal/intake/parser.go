// Package intake turns free-text trip messages into structured TripRequests
// using deterministic pattern matching.
package intake

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/safar-uz/safar-api/internal/types"
)

const (
	defaultCity      = "Samarkand"
	defaultDays      = 2
	defaultBudgetUSD = 100
	minDays          = 1
	maxDays          = 14
)

var (
	reDaysDigit    = regexp.MustCompile(`(\d+)\s*(?:day|days|дня|дней|день)`)
	reWeeks        = regexp.MustCompile(`(\d+)\s*(?:week|weeks)`)
	reBudgetFix    = regexp.MustCompile(`not\s+(\d+)\s+but\s+(\d+)`)
	reBudgetSuffix = regexp.MustCompile(`(\d+)\s*\$`)
	reBudgetPrefix = regexp.MustCompile(`\$\s*(\d+)`)
	reBudgetWord   = regexp.MustCompile(`(\d+)\s*(?:dollars|usd|bucks)`)
	reStandalone   = regexp.MustCompile(`\b(\d+)\b`)
	reMountainDay  = regexp.MustCompile(`(?:mountains?|hike|hiking|lakes?)\D*day\s*(\d+)|day\s*(\d+)\D*(?:mountains?|hike|hiking|lakes?)`)
	reDeparture    = regexp.MustCompile(`(?:departure|leave|leaving|flight)\D*(\d{1,2})[:.](\d{2})`)
)

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
}

var interestKeywords = map[string][]string{
	"history":      {"history", "historical", "ancient", "heritage", "monument", "mausoleum"},
	"nature":       {"nature", "mountain", "mountains", "lake", "lakes", "hike", "hiking", "outdoor", "waterfall"},
	"food":         {"food", "cuisine", "eat", "restaurant", "plov", "culinary", "tasting"},
	"architecture": {"architecture", "mosque", "madrasah", "building", "tilework"},
	"culture":      {"culture", "cultural", "craft", "crafts", "bazaar", "market", "tradition"},
	"adventure":    {"adventure", "trek", "trekking", "extreme", "climb"},
	"photography":  {"photo", "photos", "photography", "instagram", "camera"},
	"shopping":     {"shopping", "souvenir", "souvenirs", "buy", "textiles"},
}

var greetings = []string{"hi", "hello", "hey", "salom", "privet", "good morning", "good evening"}

// Result is the outcome of parsing one message. When NeedsClarification is
// set no TripRequest was produced and Message carries the question to ask.
type Result struct {
	Request            *types.TripRequest `json:"request,omitempty"`
	NeedsClarification bool               `json:"needs_clarification"`
	Message            string             `json:"message,omitempty"`
	AssumedDefaults    []string           `json:"assumed_defaults,omitempty"`
}

// Parser extracts TripRequests from free text.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger.With(slog.String("component", "intake"))}
}

// Parse normalizes one free-text message into a TripRequest, falling back to
// documented defaults for anything the message does not specify.
func (p *Parser) Parse(message string) Result {
	text := strings.ToLower(strings.TrimSpace(message))

	if isGreeting(text) {
		return Result{
			NeedsClarification: true,
			Message:            "Tell me about your trip: how many days, what budget, and what are you interested in?",
		}
	}

	var defaults []string

	days, daysFound := parseDays(text)
	if !daysFound {
		days = defaultDays
		defaults = append(defaults, "duration_days")
	}

	budget, budgetFound := parseBudget(text)
	if !budgetFound {
		budget = defaultBudgetUSD
		defaults = append(defaults, "budget_usd")
	}

	interests := parseInterests(text)
	if len(interests) == 0 {
		interests = []string{"history", "architecture"}
		defaults = append(defaults, "interests")
	}

	req := &types.TripRequest{
		City:           defaultCity,
		DurationDays:   days,
		BudgetUSD:      budget,
		Interests:      interests,
		Constraints:    parseConstraints(text),
		TravelersCount: 1,
		Pace:           types.PaceModerate,
		BudgetStyle:    budgetStyleFor(budget, days),
		PhysicalLevel:  "moderate",
	}

	p.logger.Debug("Parsed trip message",
		slog.Int("days", req.DurationDays),
		slog.Float64("budget", req.BudgetUSD),
		slog.Any("interests", req.Interests),
	)

	return Result{Request: req, AssumedDefaults: defaults}
}

// ApplyPatch updates an existing request from a free-text correction.
// Unrecognized text leaves the request unchanged.
func (p *Parser) ApplyPatch(req types.TripRequest, message string) types.TripRequest {
	text := strings.ToLower(strings.TrimSpace(message))

	if budget, ok := parseBudget(text); ok {
		req.BudgetUSD = budget
		req.BudgetStyle = budgetStyleFor(budget, req.DurationDays)
	}
	if days, ok := parseDays(text); ok {
		req.DurationDays = days
	}
	if strings.Contains(text, "tomorrow") {
		req.StartDate = time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	}
	return req
}

func isGreeting(text string) bool {
	if len(text) < 5 {
		return true
	}
	for _, g := range greetings {
		if text == g || strings.HasPrefix(text, g+" ") || strings.HasPrefix(text, g+"!") {
			// A greeting followed by actual trip content is not a short-circuit.
			rest := strings.TrimLeft(strings.TrimPrefix(text, g), " !,.")
			if len(rest) < 5 {
				return true
			}
		}
	}
	return false
}

func parseDays(text string) (int, bool) {
	if m := reWeeks.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return clampDays(n * 7), true
	}
	if m := reDaysDigit.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return clampDays(n), true
	}
	for word, n := range wordNumbers {
		if regexp.MustCompile(`\b` + word + `\s+days?\b`).MatchString(text) {
			return clampDays(n), true
		}
	}
	return 0, false
}

func clampDays(n int) int {
	if n < minDays {
		return minDays
	}
	if n > maxDays {
		return maxDays
	}
	return n
}

func parseBudget(text string) (float64, bool) {
	if m := reBudgetFix.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[2])
		return float64(n), true
	}
	for _, re := range []*regexp.Regexp{reBudgetPrefix, reBudgetSuffix, reBudgetWord} {
		if m := re.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			return float64(n), true
		}
	}
	// A bare number in a plausible money range, as long as it is not
	// already consumed by a days expression.
	daysStripped := reDaysDigit.ReplaceAllString(reWeeks.ReplaceAllString(text, ""), "")
	for _, m := range reStandalone.FindAllStringSubmatch(daysStripped, -1) {
		n, _ := strconv.Atoi(m[1])
		if n >= 50 && n <= 10000 {
			return float64(n), true
		}
	}
	return 0, false
}

func parseInterests(text string) []string {
	var out []string
	for _, interest := range []string{"history", "nature", "food", "architecture", "culture", "adventure", "photography", "shopping"} {
		for _, kw := range interestKeywords[interest] {
			if regexp.MustCompile(`\b` + kw + `\b`).MatchString(text) {
				out = append(out, interest)
				break
			}
		}
	}
	return out
}

func parseConstraints(text string) []types.Constraint {
	var out []types.Constraint
	if m := reMountainDay.FindStringSubmatch(text); m != nil {
		dayStr := m[1]
		if dayStr == "" {
			dayStr = m[2]
		}
		day, _ := strconv.Atoi(dayStr)
		if day >= 1 {
			out = append(out, types.Constraint{Type: types.ConstraintMountainDay, Day: day})
		}
	}
	if m := reDeparture.FindStringSubmatch(text); m != nil {
		out = append(out, types.Constraint{
			Type:  types.ConstraintDeparture,
			Value: padTime(m[1]) + ":" + m[2],
		})
	}
	return out
}

func padTime(h string) string {
	if len(h) == 1 {
		return "0" + h
	}
	return h
}

func budgetStyleFor(budget float64, days int) types.BudgetStyle {
	if days <= 0 {
		days = 1
	}
	daily := budget / float64(days)
	switch {
	case daily < 40:
		return types.BudgetStyleBudget
	case daily > 120:
		return types.BudgetStyleComfort
	default:
		return types.BudgetStyleModerate
	}
}
