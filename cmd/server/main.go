package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"stockdash/internal/config"
	"stockdash/internal/handlers"
	"stockdash/internal/logger"
	"stockdash/internal/marketdata"
	"stockdash/internal/middleware"
	"stockdash/internal/services"
	"stockdash/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Market data pipeline: Yahoo chart provider behind a rate-limited,
	// cached, per-ticker concurrent fetcher.
	provider := marketdata.NewYahooProvider(http.DefaultClient, appConfig.QuoteBaseURL)
	fetcher := marketdata.NewFetcher(provider, appConfig.QuoteTimeout, appConfig.QuoteRatePerSec, appConfig.QuoteCacheTTL)

	// Initialize services
	analysisService := services.NewAnalysisService(fetcher)
	dashboardService := services.NewDashboardService()

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(analysisService, appConfig.MaxUploadBytes)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, appConfig.MaxUploadBytes, appConfig.ForecastPeriods)
	quoteHandler := handlers.NewQuoteHandler(fetcher)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Portfolio analysis
	portfolio := v1.Group("/portfolio")
	portfolio.POST("/analyze", portfolioHandler.Analyze)

	// Indicator dashboard
	dashboard := v1.Group("/dashboard")
	dashboard.POST("/indicators", dashboardHandler.Indicators)
	dashboard.POST("/forecast", dashboardHandler.Forecast)

	// Quote history
	quotes := v1.Group("/quotes")
	quotes.GET("/:ticker/history", quoteHandler.History)

	log.Infof("Starting stockdash server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
