package itineraries

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/types"
)

var itineraryCols = []string{"id", "user_id", "name", "city", "duration_days", "budget_usd", "style", "days", "is_public", "created_at", "updated_at"}

func newTestRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewPostgresRepository(mockPool, slog.New(slog.NewTextHandler(io.Discard, nil))), mockPool
}

func sampleDays(t *testing.T) ([]types.DayPlan, []byte) {
	t.Helper()
	days := []types.DayPlan{
		{
			Day:   1,
			Theme: "Old City",
			Activities: []types.ActivitySlot{
				{POIID: "registan_square", POIName: "Registan Square", StartTime: "09:00", EndTime: "11:30", CostUSD: 7},
			},
			TotalCost:  7,
			TotalHours: 2.5,
		},
	}
	raw, err := json.Marshal(days)
	require.NoError(t, err)
	return days, raw
}

func TestRepository_CreateRoundTripsDays(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	userID := uuid.New()
	id := uuid.New()
	now := time.Now()
	days, rawDays := sampleDays(t)

	req := types.CreateItineraryRequest{
		Name:         "Weekend in Samarkand",
		DurationDays: 2,
		BudgetUSD:    150,
		Days:         days,
	}

	mockPool.ExpectQuery("INSERT INTO itineraries").
		WithArgs(userID, req.Name, "Samarkand", req.DurationDays, req.BudgetUSD, "balanced", rawDays, false).
		WillReturnRows(pgxmock.NewRows(itineraryCols).
			AddRow(id, userID, req.Name, "Samarkand", req.DurationDays, req.BudgetUSD, "balanced", rawDays, false, now, now))

	created, err := repo.Create(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Equal(t, id, created.ID)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Samarkand", created.City)
	assert.Equal(t, "balanced", created.Style)
	require.Len(t, created.Days, 1)
	assert.Equal(t, "registan_square", created.Days[0].Activities[0].POIID)
	assert.InDelta(t, 2.5, created.Days[0].TotalHours, 0.001)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepository_GetScopedToOwnerOrPublic(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	userID := uuid.New()
	id := uuid.New()
	now := time.Now()
	_, rawDays := sampleDays(t)

	mockPool.ExpectQuery("SELECT (.+) FROM itineraries").
		WithArgs(id, userID).
		WillReturnRows(pgxmock.NewRows(itineraryCols).
			AddRow(id, userID, "Weekend in Samarkand", "Samarkand", 2, 150.0, "balanced", rawDays, false, now, now))

	it, err := repo.Get(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, "Weekend in Samarkand", it.Name)

	mockPool.ExpectQuery("SELECT (.+) FROM itineraries").
		WithArgs(id, userID).
		WillReturnRows(pgxmock.NewRows(itineraryCols))

	_, err = repo.Get(context.Background(), userID, id)
	assert.ErrorIs(t, err, api.ErrNotFound)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepository_DeleteForeignItineraryNotFound(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	userID := uuid.New()
	id := uuid.New()

	mockPool.ExpectExec("DELETE FROM itineraries").
		WithArgs(id, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), userID, id), api.ErrNotFound)
}
