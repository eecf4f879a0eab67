package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	database "github.com/safar-uz/safar-api/app/db"
	"github.com/safar-uz/safar-api/app/observability/metrics"
	"github.com/safar-uz/safar-api/app/tracer"
	"github.com/safar-uz/safar-api/config"
	"github.com/safar-uz/safar-api/internal/api/auth"
	"github.com/safar-uz/safar-api/internal/api/hotels"
	"github.com/safar-uz/safar-api/internal/api/itineraries"
	"github.com/safar-uz/safar-api/internal/api/places"
	"github.com/safar-uz/safar-api/internal/api/poi"
	"github.com/safar-uz/safar-api/internal/api/restaurants"
	"github.com/safar-uz/safar-api/internal/api/trips"
	"github.com/safar-uz/safar-api/internal/dataset"
	"github.com/safar-uz/safar-api/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Migrations run before the main pool is opened.
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	metricsServer, err := tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	store, err := dataset.Load(logger)
	if err != nil {
		logger.Error("Failed to load reference dataset", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Reference dataset loaded", slog.Int("pois", store.Stats().TotalPOIs))

	authService := auth.NewServiceImpl(auth.NewPostgresRepository(pool, logger), cfg.JWT, logger)
	authHandler := auth.NewHandler(authService, logger)

	tripsHandler := trips.NewHandler(trips.NewServiceImpl(store, logger), logger)
	poiHandler := poi.NewHandler(poi.NewServiceImpl(store, logger), logger)

	placesHandler := places.NewHandler(places.NewServiceImpl(places.NewPostgresRepository(pool, logger), logger), logger)
	hotelsHandler := hotels.NewHandler(hotels.NewServiceImpl(hotels.NewPostgresRepository(pool, logger), logger), logger)
	restaurantsHandler := restaurants.NewHandler(restaurants.NewServiceImpl(restaurants.NewPostgresRepository(pool, logger), logger), logger)
	itinerariesHandler := itineraries.NewHandler(itineraries.NewServiceImpl(itineraries.NewPostgresRepository(pool, logger), logger), logger)

	mux := router.Setup(&router.Config{
		Logger:             logger,
		Pool:               pool,
		AuthHandler:        authHandler,
		TripsHandler:       tripsHandler,
		POIHandler:         poiHandler,
		PlacesHandler:      placesHandler,
		HotelsHandler:      hotelsHandler,
		RestaurantsHandler: restaurantsHandler,
		ItinerariesHandler: itinerariesHandler,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting metrics server", slog.String("address", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server graceful shutdown failed", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Application shut down complete.")
}

// setupLogger picks colored logs for development and JSON elsewhere.
func setupLogger(mode string) *slog.Logger {
	if mode == "" {
		mode = os.Getenv("APP_ENV")
	}
	if mode == "development" || mode == "" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
