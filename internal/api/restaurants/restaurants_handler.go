package restaurants

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/types"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With(slog.String("handler", "restaurants")),
	}
}

// List handles GET /restaurants. The `type` parameter is a substring match
// over name, description and cuisine.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		q = r.URL.Query().Get("type")
	}
	filter := types.RestaurantFilter{
		Cuisine:    r.URL.Query().Get("cuisine"),
		PriceRange: r.URL.Query().Get("price_range"),
		Query:      q,
		Limit:      parseIntParam(r, "limit"),
		Offset:     parseIntParam(r, "offset"),
	}

	restaurants, err := h.service.List(r.Context(), filter)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to list restaurants")
		return
	}
	if restaurants == nil {
		restaurants = []types.Restaurant{}
	}
	api.WriteJSONResponse(w, r, http.StatusOK, restaurants)
}

// Get handles GET /restaurants/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	rest, err := h.service.Get(r.Context(), id)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "restaurant not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, rest)
}

// Create handles POST /restaurants.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateRestaurantRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	rest, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create restaurant", slog.Any("error", err))
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to create restaurant")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, rest)
}

// Update handles PUT /restaurants/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	var req types.CreateRestaurantRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	rest, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to update restaurant")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, rest)
}

// Delete handles DELETE /restaurants/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to delete restaurant")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func parseIntParam(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
