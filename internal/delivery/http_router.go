package delivery

import (
	"time"

	"advision/internal/delivery/middleware"
	"advision/pkg/logger"
	"advision/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers       *HTTPHandlers
	requestTimeout time.Duration
	logger         *logger.Logger
	metrics        *metrics.Metrics
}

func NewHTTPRouter(handlers *HTTPHandlers, requestTimeout time.Duration, logger *logger.Logger, metrics *metrics.Metrics) *HTTPRouter {
	return &HTTPRouter{
		handlers:       handlers,
		requestTimeout: requestTimeout,
		logger:         logger,
		metrics:        metrics,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.requestTimeout))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Ad catalog
		api.GET("/fetch-ads", r.handlers.FetchAds)
		api.GET("/filter-options", r.handlers.FilterOptions)

		// Selection stage
		selection := api.Group("/selection")
		{
			selection.GET("", r.handlers.GetSelection)
			selection.POST("/toggle", r.handlers.ToggleSelection)
			selection.POST("/commit", r.handlers.CommitSelection)
			selection.POST("/clear", r.handlers.ClearSelection)
		}

		// Analysis stage
		api.POST("/analyze-ads", r.handlers.AnalyzeAds)
		api.GET("/analysis", r.handlers.GetAnalysis)
		api.POST("/analysis/handoff", r.handlers.HandoffAnalysis)

		// Insights stage
		api.POST("/generate-insights", r.handlers.GenerateInsights)
		api.GET("/insights", r.handlers.GetInsights)

		// Campaign wizard
		api.GET("/campaign/summary", r.handlers.CampaignSummary)
		api.POST("/generate-campaign-strategy", r.handlers.GenerateStrategy)
		api.POST("/generate-campaign-image", r.handlers.GenerateImage)
		api.GET("/campaigns", r.handlers.ListCampaigns)

		// Marketing assistant
		api.POST("/chat", r.handlers.Chat)
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}
