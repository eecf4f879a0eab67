package trips

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

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
		logger:   logger.With(slog.String("handler", "trips")),
	}
}

type parseRequest struct {
	Message string `json:"message" validate:"required"`
}

// planRequest accepts a free-text message, a structured request, or both.
// When both are present the message is applied as a correction to the
// request before planning.
type planRequest struct {
	Message string             `json:"message,omitempty"`
	Request *types.TripRequest `json:"request,omitempty"`
}

type verifyRequest struct {
	Route   *types.RouteOption `json:"route" validate:"required"`
	Request *types.TripRequest `json:"request" validate:"required"`
}

// Parse handles POST /trips/parse.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "message is required")
		return
	}

	result := h.service.Parse(r.Context(), req.Message)
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// Plan handles POST /trips/plan. A clarification outcome is returned with
// status 200 so clients can continue the conversation.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	switch {
	case req.Request != nil:
		if req.Message != "" {
			patched := h.service.Patch(r.Context(), *req.Request, req.Message)
			req.Request = &patched
		}
		if err := h.validate.Struct(req.Request); err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
			return
		}
		resp, err := h.service.Plan(r.Context(), req.Request)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to plan trip", slog.Any("error", err))
			api.ErrorResponse(w, r, api.StatusFromError(err), "failed to plan trip")
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, resp)

	case req.Message != "":
		resp, result, err := h.service.PlanFromMessage(r.Context(), req.Message)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to plan trip", slog.Any("error", err))
			api.ErrorResponse(w, r, api.StatusFromError(err), "failed to plan trip")
			return
		}
		if resp == nil {
			api.WriteJSONResponse(w, r, http.StatusOK, result)
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, resp)

	default:
		api.ErrorResponse(w, r, http.StatusBadRequest, "either message or request is required")
	}
}

// Verify handles POST /trips/verify.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Route == nil || req.Request == nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "route and request are required")
		return
	}

	report := h.service.Verify(r.Context(), req.Route, req.Request)
	api.WriteJSONResponse(w, r, http.StatusOK, report)
}

// Tips handles GET /trips/tips.
func (h *Handler) Tips(w http.ResponseWriter, r *http.Request) {
	var interests []string
	if raw := r.URL.Query().Get("interests"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				interests = append(interests, strings.ToLower(part))
			}
		}
	}

	budget := 0.0
	if raw := r.URL.Query().Get("budget"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "invalid budget")
			return
		}
		budget = v
	}

	tips := h.service.Tips(r.Context(), interests, budget)
	if tips == nil {
		tips = []types.Tip{}
	}
	api.WriteJSONResponse(w, r, http.StatusOK, tips)
}
