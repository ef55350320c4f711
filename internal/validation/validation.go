package validation

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creatorpulse/backend/internal/cache"
	"github.com/creatorpulse/backend/internal/database"
	"github.com/creatorpulse/backend/internal/logger"
	"github.com/creatorpulse/backend/internal/storage"
	"go.uber.org/zap"
)

// ServiceValidator handles validation of optional services at startup.
// REQUIRED_SERVICES names the services the deployment cannot run without;
// anything not listed is allowed to be down.
type ServiceValidator struct {
	requiredServices []string
}

// NewServiceValidator creates a new service validator
func NewServiceValidator() *ServiceValidator {
	return &ServiceValidator{
		requiredServices: parseRequiredServices(),
	}
}

// ValidateServices validates all configured services
func (sv *ServiceValidator) ValidateServices(ctx context.Context) error {
	if len(sv.requiredServices) == 0 {
		logger.Log.Info("No required services configured for validation")
		return nil
	}

	logger.Log.Info("Validating required services",
		zap.Strings("services", sv.requiredServices),
	)

	services := sv.getServiceChecks()

	for _, serviceName := range sv.requiredServices {
		serviceChecker, ok := services[serviceName]
		if !ok {
			logger.Log.Warn("Unknown service type in validation",
				zap.String("service", serviceName),
			)
			continue
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := serviceChecker(timeoutCtx)
		cancel()
		if err != nil {
			logger.Log.Error("Required service validation failed",
				zap.String("service", serviceName),
				zap.Error(err),
			)
			return fmt.Errorf("required service %q validation failed: %w", serviceName, err)
		}

		logger.Log.Info("Service validated",
			zap.String("service", serviceName),
		)
	}

	return nil
}

// getServiceChecks returns a map of service names to their validation functions
func (sv *ServiceValidator) getServiceChecks() map[string]func(ctx context.Context) error {
	return map[string]func(ctx context.Context) error{
		"postgres": validatePostgres,
		"redis":    validateRedis,
		"s3":       validateS3,
	}
}

// validatePostgres checks if the primary database is reachable
func validatePostgres(ctx context.Context) error {
	if err := database.Health(); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// validateRedis checks if Redis is reachable
func validateRedis(ctx context.Context) error {
	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	if redisHost == "" {
		redisHost = "localhost"
	}
	if redisPort == "" {
		redisPort = "6379"
	}

	redisClient, err := cache.NewRedisClient(redisHost, redisPort, redisPassword)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()

	return redisClient.Health(ctx)
}

// validateS3 checks if the export bucket is accessible
func validateS3(ctx context.Context) error {
	region := os.Getenv("AWS_REGION")
	bucket := os.Getenv("AWS_BUCKET")

	if region == "" || bucket == "" {
		return fmt.Errorf("AWS_REGION and AWS_BUCKET are required for S3 validation")
	}

	s3Uploader, err := storage.NewS3Uploader(region, bucket, os.Getenv("CDN_BASE_URL"))
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	if err := s3Uploader.CheckBucketAccess(ctx); err != nil {
		return fmt.Errorf("S3 bucket access check failed: %w", err)
	}

	return nil
}

// parseRequiredServices reads the comma-separated REQUIRED_SERVICES env var
func parseRequiredServices() []string {
	raw := os.Getenv("REQUIRED_SERVICES")
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	services := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			services = append(services, trimmed)
		}
	}
	return services
}
