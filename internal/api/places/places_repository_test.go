package places

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

	"github.com/safar-uz/safar-api/app/observability/metrics"
	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/types"
)

var placeCols = []string{"id", "name", "description", "category", "price_usd", "rating", "tags", "latitude", "longitude", "image_url", "created_at", "updated_at"}

func newTestRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	metrics.InitAppMetrics()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresRepository(mockPool, logger), mockPool
}

func TestRepository_CreateThenGetRoundTrip(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	id := uuid.New()
	now := time.Now()

	req := types.CreatePlaceRequest{
		Name:        "Registan Square",
		Description: "The heart of the city",
		Category:    "history",
		PriceUSD:    7,
		Rating:      4.9,
		Tags:        []string{"must_see", "unesco"},
	}

	mockPool.ExpectQuery("INSERT INTO places").
		WithArgs(req.Name, req.Description, req.Category, req.PriceUSD, req.Rating, req.Tags, (*float64)(nil), (*float64)(nil), "").
		WillReturnRows(pgxmock.NewRows(placeCols).
			AddRow(id, req.Name, req.Description, req.Category, req.PriceUSD, req.Rating, req.Tags, nil, nil, "", now, now))

	created, err := repo.Create(context.Background(), req)
	require.NoError(t, err)

	mockPool.ExpectQuery("SELECT (.+) FROM places WHERE id =").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(placeCols).
			AddRow(id, req.Name, req.Description, req.Category, req.PriceUSD, req.Rating, req.Tags, nil, nil, "", now, now))

	fetched, err := repo.Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Category, fetched.Category)
	assert.Equal(t, created.PriceUSD, fetched.PriceUSD)
	assert.Equal(t, created.Tags, fetched.Tags)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepository_GetNotFound(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	id := uuid.New()

	mockPool.ExpectQuery("SELECT (.+) FROM places WHERE id =").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(placeCols))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestRepository_ListWithFilters(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	now := time.Now()
	minPrice := 1.0
	maxPrice := 10.0

	mockPool.ExpectQuery("SELECT (.+) FROM places WHERE category =").
		WithArgs("history", minPrice, maxPrice, 20).
		WillReturnRows(pgxmock.NewRows(placeCols).
			AddRow(uuid.New(), "Gur-Emir", "Mausoleum", "history", 5.0, 4.8, []string{"unesco"}, nil, nil, "", now, now))

	got, err := repo.List(context.Background(), types.PlaceFilter{
		Category: "history",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Limit:    20,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gur-Emir", got[0].Name)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mockPool := newTestRepo(t)
	id := uuid.New()

	mockPool.ExpectExec("DELETE FROM places").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mockPool.ExpectExec("DELETE FROM places").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), api.ErrNotFound)
}
