// Package router wires every feature handler into the versioned HTTP API.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safar-uz/safar-api/app/logger"
	"github.com/safar-uz/safar-api/internal/api"
	"github.com/safar-uz/safar-api/internal/api/auth"
	"github.com/safar-uz/safar-api/internal/api/hotels"
	"github.com/safar-uz/safar-api/internal/api/itineraries"
	"github.com/safar-uz/safar-api/internal/api/places"
	"github.com/safar-uz/safar-api/internal/api/poi"
	"github.com/safar-uz/safar-api/internal/api/restaurants"
	"github.com/safar-uz/safar-api/internal/api/trips"
)

// Config carries the dependencies the router mounts.
type Config struct {
	Logger             *slog.Logger
	Pool               *pgxpool.Pool
	AuthHandler        *auth.Handler
	TripsHandler       *trips.Handler
	POIHandler         *poi.Handler
	PlacesHandler      *places.Handler
	HotelsHandler      *hotels.Handler
	RestaurantsHandler *restaurants.Handler
	ItinerariesHandler *itineraries.Handler
}

// Setup builds the application router with server-wide middleware applied.
func Setup(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := cfg.Pool.Ping(ctx); err != nil {
			api.ErrorResponse(w, req, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		api.WriteJSONResponse(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes.
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/refresh", cfg.AuthHandler.Refresh)

			r.Post("/trips/parse", cfg.TripsHandler.Parse)
			r.Post("/trips/plan", cfg.TripsHandler.Plan)
			r.Post("/trips/verify", cfg.TripsHandler.Verify)
			r.Get("/trips/tips", cfg.TripsHandler.Tips)

			r.Get("/pois", cfg.POIHandler.List)
			r.Get("/pois/stats", cfg.POIHandler.Stats)
			r.Get("/pois/{id}", cfg.POIHandler.Get)

			r.Get("/places", cfg.PlacesHandler.List)
			r.Get("/places/{id}", cfg.PlacesHandler.Get)
			r.Get("/hotels", cfg.HotelsHandler.List)
			r.Get("/hotels/{id}", cfg.HotelsHandler.Get)
			r.Get("/restaurants", cfg.RestaurantsHandler.List)
			r.Get("/restaurants/{id}", cfg.RestaurantsHandler.Get)
		})

		// Routes requiring a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthHandler.Authenticate)

			r.Post("/auth/logout", cfg.AuthHandler.Logout)
			r.Get("/auth/validate-session", cfg.AuthHandler.ValidateSession)

			r.Post("/places", cfg.PlacesHandler.Create)
			r.Put("/places/{id}", cfg.PlacesHandler.Update)
			r.Delete("/places/{id}", cfg.PlacesHandler.Delete)

			r.Post("/hotels", cfg.HotelsHandler.Create)
			r.Put("/hotels/{id}", cfg.HotelsHandler.Update)
			r.Delete("/hotels/{id}", cfg.HotelsHandler.Delete)

			r.Post("/restaurants", cfg.RestaurantsHandler.Create)
			r.Put("/restaurants/{id}", cfg.RestaurantsHandler.Update)
			r.Delete("/restaurants/{id}", cfg.RestaurantsHandler.Delete)

			r.Get("/itineraries", cfg.ItinerariesHandler.List)
			r.Post("/itineraries", cfg.ItinerariesHandler.Create)
			r.Get("/itineraries/{id}", cfg.ItinerariesHandler.Get)
			r.Put("/itineraries/{id}", cfg.ItinerariesHandler.Update)
			r.Delete("/itineraries/{id}", cfg.ItinerariesHandler.Delete)
		})
	})

	return r
}
