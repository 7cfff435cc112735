package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Aleksandr-Gamble/scale-serp/api/health"
	"github.com/Aleksandr-Gamble/scale-serp/api/locations"
	"github.com/Aleksandr-Gamble/scale-serp/api/search"
	"github.com/Aleksandr-Gamble/scale-serp/api/types"
	usageAPI "github.com/Aleksandr-Gamble/scale-serp/api/usage"
	"github.com/Aleksandr-Gamble/scale-serp/api/version"
	_ "github.com/Aleksandr-Gamble/scale-serp/docs/swagger"
	"github.com/Aleksandr-Gamble/scale-serp/internal/services/scaleserp"
	usageService "github.com/Aleksandr-Gamble/scale-serp/internal/services/usage"
	"github.com/Aleksandr-Gamble/scale-serp/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.APIKey == "" {
		deps.APIKey = cfg.ScaleSERP.APIKey
	}

	// Initialize the upstream client if not set
	if deps.SerpClient == nil {
		deps.SerpClient = scaleserp.NewClient(scaleserp.Config{
			RequestsPerMinute: cfg.ScaleSERP.RequestsPerMinute,
			BurstSize:         cfg.ScaleSERP.BurstSize,
			Timeout:           cfg.ScaleSERP.Timeout,
			MaxRetries:        cfg.ScaleSERP.RetryAttempts,
			RetryBackoff:      cfg.ScaleSERP.RetryBackoff,
			UserAgent:         cfg.ScaleSERP.UserAgent,
			BaseURL:           cfg.ScaleSERP.BaseURL,
		})
	}

	// Initialize usage accounting if the database is available
	if deps.UsageService == nil && cfg.Usage.Enabled && deps.DB != nil && deps.DB.DB != nil {
		deps.UsageService = usageService.NewService(
			usageService.NewRepository(deps.DB.DB),
			usageService.WithRecentLimit(cfg.Usage.RecentLimit),
		)
	}

	// Register search routes with dedicated rate limiting; searches
	// consume upstream credits, so the budget is the tightest
	searchGroup := v1.Group("/search")
	searchGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "search", endpointRPS(cfg, "search", 5), 10))
	search.RegisterRoutes(searchGroup, deps)

	// Register locations routes; lookups are credit-free upstream
	locationsGroup := v1.Group("/locations")
	locationsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "locations", endpointRPS(cfg, "locations", 10), 20))
	locations.RegisterRoutes(locationsGroup, deps)

	// Register usage routes; local reads only
	if deps.UsageService != nil {
		usageGroup := v1.Group("/usage")
		usageGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "usage", endpointRPS(cfg, "default", 20), 40))
		usageAPI.RegisterRoutes(usageGroup, deps)
	}

	return nil
}

// endpointRPS returns the configured per-client rate for an endpoint
// group, falling back to the provided default.
func endpointRPS(cfg *config.Config, endpoint string, fallback int) int {
	if rps, ok := cfg.RateLimiting.Endpoints[endpoint]; ok && rps > 0 {
		return rps
	}
	return fallback
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
