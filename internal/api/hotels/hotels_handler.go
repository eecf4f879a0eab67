package hotels

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
		logger:   logger.With(slog.String("handler", "hotels")),
	}
}

// List handles GET /hotels.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := types.HotelFilter{
		Query:    r.URL.Query().Get("q"),
		Stars:    parseIntPtrParam(r, "stars"),
		MinStars: parseIntPtrParam(r, "min_stars"),
		MinPrice: parseFloatParam(r, "min_price"),
		MaxPrice: parseFloatParam(r, "max_price"),
		Limit:    parseIntParam(r, "limit"),
		Offset:   parseIntParam(r, "offset"),
	}

	hotels, err := h.service.List(r.Context(), filter)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to list hotels")
		return
	}
	if hotels == nil {
		hotels = []types.Hotel{}
	}
	api.WriteJSONResponse(w, r, http.StatusOK, hotels)
}

// Get handles GET /hotels/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid hotel id")
		return
	}

	hotel, err := h.service.Get(r.Context(), id)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "hotel not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, hotel)
}

// Create handles POST /hotels.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateHotelRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	hotel, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create hotel", slog.Any("error", err))
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to create hotel")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, hotel)
}

// Update handles PUT /hotels/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid hotel id")
		return
	}

	var req types.CreateHotelRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	hotel, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to update hotel")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, hotel)
}

// Delete handles DELETE /hotels/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid hotel id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to delete hotel")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func parseFloatParam(r *http.Request, name string) *float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtrParam(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
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
