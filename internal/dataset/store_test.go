package dataset

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad(t *testing.T) {
	store, err := Load(testLogger())
	require.NoError(t, err)

	assert.NotEmpty(t, store.All())
	assert.NotEmpty(t, store.Templates())
	assert.NotEmpty(t, store.Tips())

	for _, p := range store.All() {
		assert.GreaterOrEqual(t, p.CostUSD, 0.0, "POI %s cost must be non-negative", p.ID)
		assert.GreaterOrEqual(t, p.DurationHours, 0.0, "POI %s duration must be non-negative", p.ID)
		assert.NotEmpty(t, p.Name, "POI %s must have a name", p.ID)
	}
}

func TestGetByID(t *testing.T) {
	store, err := Load(testLogger())
	require.NoError(t, err)

	t.Run("exact", func(t *testing.T) {
		p, ok := store.GetByID("registan_square")
		require.True(t, ok)
		assert.Equal(t, "Registan Square", p.Name)
	})

	t.Run("normalized", func(t *testing.T) {
		p, ok := store.GetByID("Registan Square")
		require.True(t, ok)
		assert.Equal(t, "registan_square", p.ID)
	})

	t.Run("fuzzy substring", func(t *testing.T) {
		p, ok := store.GetByID("registan")
		require.True(t, ok)
		assert.Contains(t, p.ID, "registan")
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := store.GetByID("atlantis")
		assert.False(t, ok)
	})
}

func TestMountainOptions(t *testing.T) {
	store, err := Load(testLogger())
	require.NoError(t, err)

	opts := store.MountainOptions()
	require.NotEmpty(t, opts)
	for _, p := range opts {
		assert.True(t, p.HasAnyTag("mountains", "lake"), "POI %s", p.ID)
		assert.GreaterOrEqual(t, p.DurationHours, 4.0, "POI %s", p.ID)
	}
	for i := 1; i < len(opts); i++ {
		assert.GreaterOrEqual(t, opts[i-1].DurationHours, opts[i].DurationHours,
			"mountain options must be sorted longest first")
	}
}

func TestMustSee(t *testing.T) {
	store, err := Load(testLogger())
	require.NoError(t, err)

	ms := store.MustSee()
	require.NotEmpty(t, ms)
	ids := make([]string, 0, len(ms))
	for _, p := range ms {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "registan_square")
}

func TestTemplateFor(t *testing.T) {
	store, err := Load(testLogger())
	require.NoError(t, err)

	tpl, ok := store.TemplateFor(2, "moderate")
	require.True(t, ok)
	assert.Equal(t, 2, tpl.DurationDays)
	assert.Len(t, tpl.Days, 2)

	_, ok = store.TemplateFor(14, "comfort")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	store, err := Load(testLogger())
	require.NoError(t, err)

	stats := store.Stats()
	assert.Equal(t, len(store.All()), stats.TotalPOIs)
	assert.Greater(t, stats.FreeCount, 0)
	assert.Greater(t, stats.MustSeeCount, 0)
	assert.Greater(t, stats.AvgCostUSD, 0.0)
}
