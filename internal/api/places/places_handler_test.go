package places

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/types"
)

// stubService keeps places in a map, enough to drive the handler.
type stubService struct {
	store map[uuid.UUID]types.Place
}

func newStubService() *stubService {
	return &stubService{store: make(map[uuid.UUID]types.Place)}
}

func (s *stubService) List(_ context.Context, _ types.PlaceFilter) ([]types.Place, error) {
	var out []types.Place
	for _, p := range s.store {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubService) Get(_ context.Context, id uuid.UUID) (*types.Place, error) {
	p, ok := s.store[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return &p, nil
}

func (s *stubService) Create(_ context.Context, req types.CreatePlaceRequest) (*types.Place, error) {
	p := types.Place{
		ID:       uuid.New(),
		Name:     req.Name,
		Category: req.Category,
		PriceUSD: req.PriceUSD,
		Rating:   req.Rating,
		Tags:     req.Tags,
	}
	s.store[p.ID] = p
	return &p, nil
}

func (s *stubService) Update(_ context.Context, id uuid.UUID, req types.CreatePlaceRequest) (*types.Place, error) {
	if _, ok := s.store[id]; !ok {
		return nil, api.ErrNotFound
	}
	p := types.Place{ID: id, Name: req.Name, Category: req.Category, PriceUSD: req.PriceUSD}
	s.store[id] = p
	return &p, nil
}

func (s *stubService) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.store[id]; !ok {
		return api.ErrNotFound
	}
	delete(s.store, id)
	return nil
}

func newTestRouter() (*chi.Mux, *stubService) {
	svc := newStubService()
	h := NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Get("/places", h.List)
	r.Post("/places", h.Create)
	r.Get("/places/{id}", h.Get)
	r.Put("/places/{id}", h.Update)
	r.Delete("/places/{id}", h.Delete)
	return r, svc
}

func TestHandler_CreateThenGetRoundTrip(t *testing.T) {
	router, _ := newTestRouter()

	body, _ := json.Marshal(types.CreatePlaceRequest{
		Name:     "Siab Bazaar",
		Category: "food",
		PriceUSD: 0,
		Rating:   4.5,
		Tags:     []string{"free"},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/places", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created types.Place
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEqual(t, uuid.Nil, created.ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/places/"+created.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched types.Place
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Tags, fetched.Tags)
	assert.Equal(t, created.PriceUSD, fetched.PriceUSD)
}

func TestHandler_CreateValidation(t *testing.T) {
	router, _ := newTestRouter()

	body, _ := json.Marshal(types.CreatePlaceRequest{Category: "food"}) // missing name

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/places", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetInvalidID(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/places/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetNotFound(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/places/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	router, svc := newTestRouter()
	p, err := svc.Create(context.Background(), types.CreatePlaceRequest{Name: "Temp"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/places/"+p.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/places/"+p.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
