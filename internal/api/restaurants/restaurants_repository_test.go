package restaurants

import (
	"context"
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

var restaurantCols = []string{"id", "name", "description", "cuisine", "price_range", "average_check_usd", "rating", "features", "specialties", "latitude", "longitude", "image_url", "created_at", "updated_at"}

func newTestRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewPostgresRepository(mockPool, slog.New(slog.NewTextHandler(io.Discard, nil))), mockPool
}

func TestRepository_CreateThenGetRoundTrip(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	id := uuid.New()
	now := time.Now()

	req := types.CreateRestaurantRequest{
		Name:            "Siyob Chaikhana",
		Cuisine:         "uzbek",
		PriceRange:      "$",
		AverageCheckUSD: 6,
		Rating:          4.6,
		Specialties:     []string{"plov"},
	}

	mockPool.ExpectQuery("INSERT INTO restaurants").
		WithArgs(req.Name, "", req.Cuisine, req.PriceRange, req.AverageCheckUSD, req.Rating,
			[]string{}, req.Specialties, (*float64)(nil), (*float64)(nil), "").
		WillReturnRows(pgxmock.NewRows(restaurantCols).
			AddRow(id, req.Name, "", req.Cuisine, req.PriceRange, req.AverageCheckUSD, req.Rating,
				[]string{}, req.Specialties, nil, nil, "", now, now))

	created, err := repo.Create(context.Background(), req)
	require.NoError(t, err)

	mockPool.ExpectQuery("SELECT (.+) FROM restaurants WHERE id =").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(restaurantCols).
			AddRow(id, req.Name, "", req.Cuisine, req.PriceRange, req.AverageCheckUSD, req.Rating,
				[]string{}, req.Specialties, nil, nil, "", now, now))

	fetched, err := repo.Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Cuisine, fetched.Cuisine)
	assert.Equal(t, created.PriceRange, fetched.PriceRange)
	assert.Equal(t, created.Specialties, fetched.Specialties)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepository_ListByCuisine(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	now := time.Now()

	mockPool.ExpectQuery("SELECT (.+) FROM restaurants WHERE LOWER\\(cuisine\\) =").
		WithArgs("uzbek", 50).
		WillReturnRows(pgxmock.NewRows(restaurantCols).
			AddRow(uuid.New(), "Old City Plov", "", "uzbek", "$$", 10.0, 4.2, []string{}, []string{}, nil, nil, "", now, now))

	got, err := repo.List(context.Background(), types.RestaurantFilter{Cuisine: "Uzbek"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "uzbek", got[0].Cuisine)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepository_DeleteNotFound(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	id := uuid.New()

	mockPool.ExpectExec("DELETE FROM restaurants").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), api.ErrNotFound)
}
