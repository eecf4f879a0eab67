package intake

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar-uz/safar-api/internal/types"
)

func newTestParser() *Parser {
	return NewParser(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParse_FullMessage(t *testing.T) {
	p := newTestParser()

	res := p.Parse("3 days in Samarkand, $200, love history and photography")
	require.False(t, res.NeedsClarification)
	require.NotNil(t, res.Request)

	assert.Equal(t, 3, res.Request.DurationDays)
	assert.Equal(t, 200.0, res.Request.BudgetUSD)
	assert.Contains(t, res.Request.Interests, "history")
	assert.Contains(t, res.Request.Interests, "photography")
	assert.Empty(t, res.AssumedDefaults)
}

func TestParse_Defaults(t *testing.T) {
	p := newTestParser()

	res := p.Parse("I want to see the old city monuments")
	require.NotNil(t, res.Request)

	assert.Equal(t, 2, res.Request.DurationDays)
	assert.Equal(t, 100.0, res.Request.BudgetUSD)
	assert.Contains(t, res.AssumedDefaults, "duration_days")
	assert.Contains(t, res.AssumedDefaults, "budget_usd")
}

func TestParse_Greeting(t *testing.T) {
	p := newTestParser()

	for _, msg := range []string{"hi", "hello", "hey!", "ok"} {
		res := p.Parse(msg)
		assert.True(t, res.NeedsClarification, "message %q", msg)
		assert.Nil(t, res.Request)
		assert.NotEmpty(t, res.Message)
	}
}

func TestParse_GreetingWithContent(t *testing.T) {
	p := newTestParser()

	res := p.Parse("hello, planning 5 days with 300 dollars, into nature")
	require.False(t, res.NeedsClarification)
	assert.Equal(t, 5, res.Request.DurationDays)
	assert.Equal(t, 300.0, res.Request.BudgetUSD)
	assert.Contains(t, res.Request.Interests, "nature")
}

func TestParse_Durations(t *testing.T) {
	p := newTestParser()

	cases := []struct {
		message string
		want    int
	}{
		{"trip for 4 days please with history", 4},
		{"two days of food and markets", 2},
		{"1 week in the city, history trip", 7},
		{"2 weeks exploring everything around", 14},
		{"30 days of wandering the monuments", 14},
	}
	for _, tc := range cases {
		res := p.Parse(tc.message)
		require.NotNil(t, res.Request, tc.message)
		assert.Equal(t, tc.want, res.Request.DurationDays, tc.message)
	}
}

func TestParse_Budgets(t *testing.T) {
	p := newTestParser()

	cases := []struct {
		message string
		want    float64
	}{
		{"3 days, budget $150, architecture", 150},
		{"3 days, 150$ for everything, architecture", 150},
		{"3 days with 150 dollars, architecture", 150},
		{"3 days, I have around 150 for the trip", 150},
		{"budget is not 100 but 300, for 3 days of history", 300},
	}
	for _, tc := range cases {
		res := p.Parse(tc.message)
		require.NotNil(t, res.Request, tc.message)
		assert.Equal(t, tc.want, res.Request.BudgetUSD, tc.message)
	}
}

func TestParse_MountainConstraint(t *testing.T) {
	p := newTestParser()

	res := p.Parse("3 days, $250, want mountains on day 2")
	require.NotNil(t, res.Request)

	c := res.Request.MountainConstraint()
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Day)
}

func TestParse_DepartureConstraint(t *testing.T) {
	p := newTestParser()

	res := p.Parse("2 days of history, $120, flight leaves at 7:00")
	require.NotNil(t, res.Request)
	require.Len(t, res.Request.Constraints, 1)

	assert.Equal(t, types.ConstraintDeparture, res.Request.Constraints[0].Type)
	assert.Equal(t, "07:00", res.Request.Constraints[0].Value)
}

func TestParse_BudgetStyle(t *testing.T) {
	p := newTestParser()

	budget := p.Parse("2 days, $60, history").Request
	assert.Equal(t, types.BudgetStyleBudget, budget.BudgetStyle)

	moderate := p.Parse("2 days, $150, history").Request
	assert.Equal(t, types.BudgetStyleModerate, moderate.BudgetStyle)

	comfort := p.Parse("2 days, $500, history").Request
	assert.Equal(t, types.BudgetStyleComfort, comfort.BudgetStyle)
}

func TestApplyPatch(t *testing.T) {
	p := newTestParser()

	base := types.TripRequest{
		City:         "Samarkand",
		DurationDays: 2,
		BudgetUSD:    100,
		Interests:    []string{"history"},
		Pace:         types.PaceModerate,
		BudgetStyle:  types.BudgetStyleModerate,
	}

	t.Run("budget update", func(t *testing.T) {
		got := p.ApplyPatch(base, "make it $300")
		assert.Equal(t, 300.0, got.BudgetUSD)
		assert.Equal(t, 2, got.DurationDays)
		assert.Equal(t, base.Interests, got.Interests)
	})

	t.Run("duration update", func(t *testing.T) {
		got := p.ApplyPatch(base, "actually 4 days")
		assert.Equal(t, 4, got.DurationDays)
		assert.Equal(t, 100.0, got.BudgetUSD)
	})

	t.Run("start tomorrow", func(t *testing.T) {
		got := p.ApplyPatch(base, "we start tomorrow")
		assert.NotEmpty(t, got.StartDate)
	})

	t.Run("no-op", func(t *testing.T) {
		got := p.ApplyPatch(base, "sounds great")
		assert.Equal(t, base, got)
	})
}
