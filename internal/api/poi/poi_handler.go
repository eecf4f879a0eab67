package poi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With(slog.String("handler", "poi")),
	}
}

// List handles GET /pois.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Tag:      r.URL.Query().Get("tag"),
	}
	if raw := r.URL.Query().Get("max_cost"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "invalid max_cost")
			return
		}
		filter.MaxCost = v
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = v
	}

	pois := h.service.List(r.Context(), filter)
	if pois == nil {
		pois = []types.POI{}
	}
	api.WriteJSONResponse(w, r, http.StatusOK, pois)
}

// Get handles GET /pois/{id}. Lookup tolerates case and near-miss IDs.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, api.StatusFromError(err), "poi not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, p)
}

// Stats handles GET /pois/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, h.service.Stats(r.Context()))
}
