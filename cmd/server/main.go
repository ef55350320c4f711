package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/creatorpulse/backend/internal/analytics"
	"github.com/creatorpulse/backend/internal/cache"
	"github.com/creatorpulse/backend/internal/container"
	"github.com/creatorpulse/backend/internal/crossplatform"
	"github.com/creatorpulse/backend/internal/database"
	"github.com/creatorpulse/backend/internal/export"
	"github.com/creatorpulse/backend/internal/handlers"
	"github.com/creatorpulse/backend/internal/logger"
	"github.com/creatorpulse/backend/internal/metrics"
	"github.com/creatorpulse/backend/internal/middleware"
	"github.com/creatorpulse/backend/internal/progress"
	"github.com/creatorpulse/backend/internal/repository"
	"github.com/creatorpulse/backend/internal/storage"
	"github.com/creatorpulse/backend/internal/telemetry"
	"github.com/creatorpulse/backend/internal/validation"
)

func main() {
	// Load environment variables; .env is optional, system environment wins
	_ = godotenv.Load()

	if err := logger.Initialize(envOr("LOG_LEVEL", "info"), envOr("LOG_FILE", "server.log")); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Log.Sync() //nolint:errcheck

	logger.Log.Info("CreatorPulse backend starting")

	// Initialize database
	if err := database.Initialize(); err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Prometheus registry
	metrics.Initialize()

	// OpenTelemetry tracing (optional)
	samplingRate, _ := strconv.ParseFloat(envOr("OTEL_SAMPLING_RATE", "1.0"), 64)
	tracerProvider, err := telemetry.InitTracer(telemetry.Config{
		ServiceName:  "creatorpulse-backend",
		Environment:  envOr("ENVIRONMENT", "development"),
		OTLPEndpoint: envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		Enabled:      os.Getenv("OTEL_ENABLED") == "true",
		SamplingRate: samplingRate,
	})
	if err != nil {
		logger.Log.Warn("tracing disabled", zap.Error(err))
	}

	// Dependency container
	deps := container.New().
		WithDB(database.DB).
		WithLogger(logger.Log)

	deps.OnCleanup(func(ctx context.Context) error {
		return database.Close()
	})

	// Redis cache (optional; the API computes on miss)
	redisClient, err := cache.NewRedisClient(
		envOr("REDIS_HOST", "localhost"),
		envOr("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
	)
	if err != nil {
		logger.Log.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		deps.WithCache(redisClient)
		deps.OnCleanup(func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	// S3 uploader for export artifacts (optional)
	var uploader *storage.S3Uploader
	if bucket := os.Getenv("AWS_BUCKET"); bucket != "" {
		uploader, err = storage.NewS3Uploader(
			envOr("AWS_REGION", "us-east-1"),
			bucket,
			os.Getenv("CDN_BASE_URL"),
		)
		if err != nil {
			logger.Log.Warn("S3 unavailable, export uploads disabled", zap.Error(err))
			uploader = nil
		} else if err := uploader.CheckBucketAccess(context.Background()); err != nil {
			logger.Log.Warn("S3 bucket access failed, export uploads disabled", zap.Error(err))
			uploader = nil
		}
	}
	if uploader != nil {
		deps.WithS3Uploader(uploader)
	}

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	contentRepo := repository.NewContentRepository(database.DB)
	completionRepo := repository.NewCompletionRepository(database.DB)
	snapshotRepo := repository.NewSnapshotRepository(database.DB)
	templateRepo := repository.NewTemplateRepository(database.DB)

	deps.SetUserRepository(userRepo).
		SetContentRepository(contentRepo).
		SetCompletionRepository(completionRepo).
		SetSnapshotRepository(snapshotRepo).
		SetTemplateRepository(templateRepo)

	// Domain services
	aggregator := analytics.NewAggregator(userRepo, contentRepo, completionRepo, snapshotRepo)
	projector := progress.NewProjector(userRepo, completionRepo)
	adapter := crossplatform.NewAdapter()
	syncer := crossplatform.NewSyncer(adapter, contentRepo)
	exporter := export.NewExporter(aggregator, nil)

	deps.WithAggregator(aggregator).
		WithProjector(projector).
		SetAdapter(adapter).
		WithSyncer(syncer).
		WithExporter(exporter)

	if err := deps.Validate(); err != nil {
		logger.Log.Fatal("dependency validation failed", zap.Error(err))
	}

	// Fail fast when a deployment marks an external service as required
	if err := validation.NewServiceValidator().ValidateServices(context.Background()); err != nil {
		logger.Log.Fatal("service validation failed", zap.Error(err))
	}

	// JWT secret for the auth middleware
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		logger.Log.Fatal("JWT_SECRET environment variable is required")
	}

	// HTTP handlers
	h := handlers.NewHandlers(aggregator, projector, adapter, syncer, exporter, snapshotRepo, templateRepo)
	if deps.Cache() != nil {
		h.SetCache(deps.Cache())
	}
	if uploader != nil {
		h.SetUploader(uploader)
	}

	// Gin router
	if envOr("ENVIRONMENT", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	if tracerProvider != nil {
		r.Use(middleware.TracingMiddleware("creatorpulse-backend"))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{envOr("CORS_ORIGIN", "*")}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	// Public endpoints
	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	{
		analyticsGroup := api.Group("/analytics")
		{
			analyticsGroup.POST("", h.ComputeAnalytics)
			analyticsGroup.GET("/progress", h.GetProgress)
			analyticsGroup.GET("/history", h.GetAnalyticsHistory)
			analyticsGroup.POST("/export", h.ExportAnalytics)
		}

		contentGroup := api.Group("/content")
		{
			contentGroup.POST("/adapt", h.AdaptContent)
			contentGroup.POST("/sync", h.SyncContent)
			contentGroup.GET("/strategy", h.GetStrategy)
		}

		templatesGroup := api.Group("/templates")
		{
			templatesGroup.GET("", h.ListTemplates)
			templatesGroup.GET("/:id", h.GetTemplate)
		}
	}

	// Server configuration
	port := envOr("PORT", "8787")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("server forced to shutdown", zap.Error(err))
	}

	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}

	if err := deps.Cleanup(ctx); err != nil {
		logger.Log.Error("cleanup failed", zap.Error(err))
	}

	logger.Log.Info("server exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
