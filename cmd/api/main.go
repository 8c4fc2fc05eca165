// @title           Project Configuration API
// @version         1.0
// @description     Catalog authoring, configuration wizard and pricing for construction projects
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /api/configurator

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "project-config-api/docs" // Swagger docs import

	"project-config-api/internal/client"
	"project-config-api/internal/config"
	"project-config-api/internal/database"
	"project-config-api/internal/job"
	"project-config-api/internal/metrics"
	"project-config-api/internal/repository"
	"project-config-api/internal/router"
	"project-config-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Project Configuration Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	db, err := connectDatabase(stopCtx, cfg, logger)
	if err != nil {
		logger.Info("Shutdown requested before the database became available", zap.Error(err))
		return
	}
	database.RegisterMetricsCallbacks(db, m)
	stopDBStats := database.StartDBStatsCollector(db, m, 15*time.Second)
	defer close(stopDBStats)

	// Redis only backs the snapshot cache; without it every wizard request reloads the catalog
	if err := database.InitRedis(cfg.Redis, logger); err != nil {
		logger.Warn("Redis unavailable, wizard snapshot cache disabled", zap.Error(err))
	}

	var exports service.ExportStore
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3Client, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, export publishing disabled", zap.Error(err))
		} else {
			exports = client.NewS3ExportStore(s3Client, logger, m)
			logger.Info("S3 export store initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, export publishing disabled")
	}

	notiClient := client.NewNoOpNotificationClient()
	if cfg.Notification.BaseURL != "" {
		notiClient = client.NewNotificationClient(cfg.Notification.BaseURL, cfg.Notification.APIKey, cfg.Notification.Timeout, logger, m)
		logger.Info("Notification client initialized", zap.String("base_url", cfg.Notification.BaseURL))
	}

	// Orphaned selection audit, also the source of the business gauges
	audit := job.NewOrphanAuditJob(repository.NewConfigurationRepository(db), m, logger)
	collector := metrics.NewBusinessMetricsCollector(audit.Counts, m, logger, time.Minute)
	collector.Start()
	defer collector.Stop()

	scheduler, err := job.NewScheduler(cfg.Jobs.OrphanAuditSchedule, audit, logger)
	if err != nil {
		logger.Fatal("Failed to schedule orphaned selection audit", zap.Error(err))
	}
	scheduler.Start()
	logger.Info("Orphaned selection audit scheduled", zap.String("schedule", cfg.Jobs.OrphanAuditSchedule))

	r := router.Setup(router.Config{
		DB:                 db,
		Logger:             logger,
		BasePath:           cfg.Server.BasePath,
		Metrics:            m,
		Redis:              database.GetRedis(),
		SnapshotTTL:        cfg.Wizard.SnapshotTTL,
		ExportStore:        exports,
		NotificationClient: notiClient,
		AutosaveDelay:      cfg.Wizard.AutosaveDelay,
		CORSOrigins:        cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Project Configuration Service started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-stopCtx.Done()
	stop()
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// pending autosaves are written once no request can schedule new ones
	if err := r.Shutdown(ctx); err != nil {
		logger.Error("Failed to flush pending autosaves", zap.Error(err))
	}

	<-scheduler.Stop().Done()

	if rc := database.GetRedis(); rc != nil {
		_ = rc.Close()
	}
	if err := database.Close(db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// connectDatabase connects, retrying every 5s until the database answers or a
// shutdown signal arrives, then migrates
func connectDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(ctx, database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, 5*time.Second, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected successfully")

	if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
		logger.Warn("Failed to run database migrations", zap.Error(err))
	} else {
		logger.Info("Database migrations completed")
	}
	return db, nil
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
