package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/medilink/supply-service/config"
	"github.com/medilink/supply-service/internal/catalog"
	"github.com/medilink/supply-service/internal/collab"
	"github.com/medilink/supply-service/internal/discovery"
	"github.com/medilink/supply-service/internal/handlers"
	"github.com/medilink/supply-service/internal/middleware"
	"github.com/medilink/supply-service/internal/pricing"
	"github.com/medilink/supply-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting supply service")

	ctx := context.Background()
	telemetryCleanup, err := telemetry.Init(ctx, telemetry.GetConfigFromEnv())
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry disabled")
		telemetryCleanup = func(context.Context) error { return nil }
	}

	store := catalog.NewStore(catalog.DefaultSeed())
	board := pricing.NewBoardStore(store, pricing.FoldOptions{
		DefaultCity:          cfg.Pricing.DefaultCity,
		FallbackPharmacyName: cfg.Pricing.FallbackPharmacyName,
		DisplayRating:        cfg.Pricing.DisplayRating,
	})

	var inventory discovery.InventorySource
	var pharmacySource handlers.PharmacySource
	if cfg.Collaborator.BaseURL != "" {
		client := collab.NewClient(
			cfg.Collaborator.BaseURL,
			cfg.Collaborator.APIKey,
			cfg.Collaborator.Timeout,
			collab.RetryConfig{
				RequestsPerSecond: cfg.Collaborator.RequestsPerSecond,
				Burst:             cfg.Collaborator.Burst,
				MaxRetries:        cfg.Collaborator.MaxRetries,
				InitialBackoff:    time.Duration(cfg.Collaborator.InitialBackoffMs) * time.Millisecond,
				MaxBackoff:        time.Duration(cfg.Collaborator.MaxBackoffMs) * time.Millisecond,
			},
		)
		inventory = client
		pharmacySource = client
		logger.Info().Str("base_url", cfg.Collaborator.BaseURL).Msg("Collaborator inventory configured")
	} else {
		logger.Info().Msg("No collaborator configured, running on fallback tiers")
	}

	engine := discovery.NewEngine(inventory, store, discovery.Config{
		DefaultQuantity: cfg.Discovery.DefaultQuantity,
		MaxConcurrency:  cfg.Discovery.MaxConcurrency,
		CheckTimeout:    cfg.Discovery.CheckTimeout,
	})

	handlers.Init(store, board, engine, pharmacySource)

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuth(cfg.Server.InternalAPIKey))
	internal.Use(middleware.ServiceRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize))
	{
		internal.GET("/health", handlers.HealthCheck)

		medicines := internal.Group("/medicines")
		{
			medicines.POST("/search", handlers.SearchMedicines)
		}

		pharmacies := internal.Group("/pharmacies")
		{
			pharmacies.GET("/:pharmacyId/availability", handlers.GetAvailability)
			pharmacies.POST("/nearby", handlers.NearbyPharmacies)
		}

		shipments := internal.Group("/shipments")
		{
			shipments.POST("", handlers.RecordShipment)
			shipments.GET("", handlers.ListShipments)
			shipments.PATCH("/:shipmentId/status", handlers.UpdateShipmentStatus)
		}

		priceboard := internal.Group("/priceboard")
		{
			priceboard.GET("", handlers.GetPriceBoard)
			priceboard.GET("/:medicineId", handlers.GetMedicineListings)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := telemetryCleanup(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "supply-service").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
