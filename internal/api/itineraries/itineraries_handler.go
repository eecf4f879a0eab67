package itineraries

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/api/auth"
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
		logger:   logger.With(slog.String("handler", "itineraries")),
	}
}

// List handles GET /itineraries, returning the authenticated user's plans.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	items, err := h.service.List(r.Context(), userID, parseIntParam(r, "limit"), parseIntParam(r, "offset"))
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to list itineraries")
		return
	}
	if items == nil {
		items = []types.Itinerary{}
	}
	api.WriteJSONResponse(w, r, http.StatusOK, items)
}

// Get handles GET /itineraries/{id}. Public itineraries are readable by any
// authenticated user.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	it, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "itinerary not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// Create handles POST /itineraries.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req types.CreateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	it, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to create itinerary")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, it)
}

// Update handles PUT /itineraries/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	var req types.CreateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	it, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to update itinerary")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// Delete handles DELETE /itineraries/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid itinerary id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to delete itinerary")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func userIDFrom(r *http.Request) (uuid.UUID, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
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
