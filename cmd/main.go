package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/floodwatch/flood_incident_map/internal/config"
	"github.com/floodwatch/flood_incident_map/internal/geocode"
	"github.com/floodwatch/flood_incident_map/internal/geofence"
	v1 "github.com/floodwatch/flood_incident_map/internal/handler/http/v1"
	"github.com/floodwatch/flood_incident_map/internal/observability"
	"github.com/floodwatch/flood_incident_map/internal/service"
	"github.com/floodwatch/flood_incident_map/internal/storage"
	"github.com/floodwatch/flood_incident_map/internal/store"
	"github.com/floodwatch/flood_incident_map/internal/webhook"
	"github.com/floodwatch/flood_incident_map/pkg/logger"
	"github.com/floodwatch/flood_incident_map/pkg/postgres"
	redisclient "github.com/floodwatch/flood_incident_map/pkg/redis"

	_ "github.com/floodwatch/flood_incident_map/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Flood Incident Map API
// @version 1.0
// @description Backend for the Galle District flood-incident mapping dashboard.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis backs the durable slot when selected, and the alert queue when a
	// webhook is configured. Connect only when one of those needs it.
	needRedis := cfg.StorageBackend == config.BackendRedis || cfg.WebhookURL != ""
	var rdb *redis.Client
	if needRedis {
		rdb, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		log.Info("Successfully connected to Redis")
	}

	// Durable slot for the incident collection.
	var slot storage.Slot
	switch cfg.StorageBackend {
	case config.BackendMemory:
		slot = storage.NewMemorySlot()
	case config.BackendFile:
		slot = storage.NewFileSlot(cfg.SlotFilePath)
	case config.BackendRedis:
		slot = storage.NewRedisSlot(rdb, cfg.SlotKey)
	case config.BackendPostgres:
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")
		slot = storage.NewPostgresSlot(dbpool, cfg.SlotKey)
	}
	log.WithField("backend", cfg.StorageBackend).Info("Durable slot initialized")

	// Flood alert pipeline, active only with a Redis connection.
	var publisher webhook.AlertPublisher
	if rdb != nil && cfg.WebhookURL != "" {
		publisher = webhook.NewRedisAlertPublisher(rdb)
		alertWorker := webhook.NewWorker(rdb, log, cfg)
		alertWorker.Start(ctx)
	}

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	incidentStore := store.New(slot, log)
	if err := incidentStore.Load(ctx); err != nil {
		log.Fatalf("Failed to load incident collection: %v", err)
	}
	metrics.IncidentCount.Set(float64(len(incidentStore.All(ctx))))

	geocoder := geocode.NewClient(
		cfg.GeocoderBaseURL,
		cfg.DistrictName,
		cfg.CountryName,
		cfg.CountryCode,
		cfg.GeocoderTimeout,
		log,
	)
	bounds := geofence.BoundingBox{
		MinLat: cfg.BoundsMinLat,
		MaxLat: cfg.BoundsMaxLat,
		MinLon: cfg.BoundsMinLon,
		MaxLon: cfg.BoundsMaxLon,
	}

	incidentService := service.NewIncidentService(incidentStore, publisher, log, metrics, clock)
	searchService := service.NewSearchService(geocoder, cfg.DistrictName, bounds, log, metrics)

	handler := v1.NewHandler(incidentService, searchService, log, cfg)

	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
