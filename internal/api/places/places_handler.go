package places

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
		logger:   logger.With(slog.String("handler", "places")),
	}
}

// List handles GET /places.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := types.PlaceFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		MinPrice: parseFloatParam(r, "min_price"),
		MaxPrice: parseFloatParam(r, "max_price"),
		Limit:    parseIntParam(r, "limit"),
		Offset:   parseIntParam(r, "offset"),
	}

	places, err := h.service.List(r.Context(), filter)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to list places")
		return
	}
	if places == nil {
		places = []types.Place{}
	}
	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

// Get handles GET /places/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid place id")
		return
	}

	place, err := h.service.Get(r.Context(), id)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "place not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, place)
}

// Create handles POST /places.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreatePlaceRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	place, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create place", slog.Any("error", err))
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to create place")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, place)
}

// Update handles PUT /places/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid place id")
		return
	}

	var req types.CreatePlaceRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	place, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to update place")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, place)
}

// Delete handles DELETE /places/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid place id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to delete place")
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
