package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/safar-uz/safar-api/internal/api"
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
		logger:   logger.With(slog.String("handler", "auth")),
	}
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Register", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.URLPath(r.URL.Path),
	))
	defer span.End()

	var req api.RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	user, err := h.service.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to register user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Login")
	defer span.End()

	var req api.LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	access, refresh, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, api.StatusFromError(err), "authentication failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, api.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Message:      "Login successful",
	})
}

// Refresh handles POST /auth/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Refresh")
	defer span.End()

	var req api.RefreshTokenRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	access, refresh, err := h.service.Refresh(ctx, req.RefreshToken)
	if err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, api.StatusFromError(err), "invalid refresh token")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, api.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Logout")
	defer span.End()

	var req api.LogoutRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Logout(ctx, req.RefreshToken); err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, api.StatusFromError(err), "failed to logout")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{
		Success: true,
		Message: "Logged out successfully",
	})
}

// ValidateSession handles GET /auth/validate-session behind the auth middleware.
func (h *Handler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		api.WriteJSONResponse(w, r, http.StatusOK, api.ValidateSessionResponse{Valid: false})
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.ValidateSessionResponse{
		Valid:    true,
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	})
}
