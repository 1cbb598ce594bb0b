package setup

import (
	"context"
	"log"

	"github.com/cenkalti/backoff/v4"
	"github.com/quartzlab/tipboard/internal/database"
	"github.com/quartzlab/tipboard/internal/redis"
	"github.com/quartzlab/tipboard/internal/setup/config"
	"github.com/quartzlab/tipboard/internal/setup/telemetry"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config // Application configuration
	Logger       *zap.Logger    // Main application logger
	DBLogger     *zap.Logger    // Database-specific logger
	DB           database.Client
	RedisManager *redis.Manager
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, autoMigrate bool) (*App, error) {
	// Load app configuration
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logger, dbLogger, err := telemetry.NewLoggers(&cfg.Debug)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded configuration", zap.String("configDir", configDir))

	// Redis manager provides connection pools for session storage
	redisManager := redis.NewManager(&cfg.Redis, logger)

	// Initialize database; the server may start before the database
	// accepts connections, so the initial ping is retried with backoff
	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, dbLogger, autoMigrate)
	if err != nil {
		return nil, err
	}

	ping := func() error {
		return db.DB().PingContext(ctx)
	}
	if err := backoff.Retry(ping, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)); err != nil {
		db.Close()
		return nil, err
	}

	// Bundle all initialized components
	return &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger,
		DB:           db,
		RedisManager: redisManager,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup() {
	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Close database connections
	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connections last as other components might need them during cleanup
	s.RedisManager.Close()
}
