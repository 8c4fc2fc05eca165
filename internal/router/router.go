package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"project-config-api/internal/cache"
	"project-config-api/internal/client"
	"project-config-api/internal/handler"
	"project-config-api/internal/metrics"
	"project-config-api/internal/middleware"
	"project-config-api/internal/repository"
	"project-config-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB                 *gorm.DB
	Logger             *zap.Logger
	BasePath           string
	Metrics            *metrics.Metrics
	Redis              *redis.Client
	SnapshotTTL        time.Duration
	ExportStore        service.ExportStore
	NotificationClient client.NotificationClient
	AutosaveDelay      time.Duration
	CORSOrigins        string
}

// Router is the configured gin engine plus the services that hold state across requests
type Router struct {
	*gin.Engine
	configurations service.ConfigurationService
}

// Shutdown writes pending autosaves. Call it after the HTTP server stopped accepting requests.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.configurations.Shutdown(ctx)
}

// Setup sets up the router with all routes
func Setup(cfg Config) *Router {
	r := gin.New()

	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint, also reachable below the base path for the ingress
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(cfg.DB)
	projectRepo := repository.NewProjectRepository(cfg.DB)
	configRepo := repository.NewConfigurationRepository(cfg.DB)

	var snapshotCache cache.SnapshotCache = cache.NoopSnapshotCache{}
	if cfg.Redis != nil {
		snapshotCache = cache.NewRedisSnapshotCache(cfg.Redis, cfg.SnapshotTTL, cfg.Logger)
	}

	// Initialize services
	snapshots := service.NewSnapshotLoader(catalogRepo, projectRepo, snapshotCache, cfg.Metrics, cfg.Logger)
	catalogService := service.NewCatalogService(catalogRepo, snapshots, cfg.Logger)
	configurationService := service.NewConfigurationService(
		configRepo,
		projectRepo,
		snapshots,
		cfg.NotificationClient,
		cfg.ExportStore,
		cfg.Metrics,
		cfg.AutosaveDelay,
		cfg.Logger,
	)
	wizardService := service.NewWizardService(configRepo, configurationService, snapshots, cfg.Logger)

	// Initialize handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	configurationHandler := handler.NewConfigurationHandler(configurationService)
	wizardHandler := handler.NewWizardHandler(wizardService)

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ============================================================
	// Catalog routes
	// ============================================================
	categories := api.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategoryTree)
		categories.POST("", catalogHandler.CreateCategory)
		categories.PATCH("/:categoryId", catalogHandler.UpdateCategory)
	}

	// ============================================================
	// Project routes
	// ============================================================
	projects := api.Group("/projects")
	{
		projects.POST("/:projectId/configurations", configurationHandler.CreateConfiguration)
		projects.GET("/:projectId/configurations", configurationHandler.ListConfigurations)
	}

	// ============================================================
	// Configuration routes
	// ============================================================
	configurations := api.Group("/configurations")
	{
		configurations.GET("/:configurationId", configurationHandler.GetConfiguration)
		configurations.DELETE("/:configurationId", configurationHandler.DeleteConfiguration)
		configurations.PUT("/:configurationId/selections", configurationHandler.SaveSelections)
		configurations.POST("/:configurationId/complete", configurationHandler.CompleteConfiguration)
		configurations.POST("/:configurationId/lock", configurationHandler.LockConfiguration)
		configurations.POST("/:configurationId/duplicate", configurationHandler.DuplicateConfiguration)
		configurations.GET("/:configurationId/export", configurationHandler.ExportConfiguration)

		// Wizard
		configurations.GET("/:configurationId/wizard", wizardHandler.OpenWizard)
		configurations.POST("/:configurationId/wizard/next", wizardHandler.Next)
		configurations.POST("/:configurationId/wizard/previous", wizardHandler.Previous)
		configurations.POST("/:configurationId/wizard/jump", wizardHandler.Jump)
		configurations.POST("/:configurationId/wizard/toggle", wizardHandler.ToggleSelection)
		configurations.POST("/:configurationId/wizard/preview", wizardHandler.Preview)
	}

	return &Router{Engine: r, configurations: configurationService}
}
