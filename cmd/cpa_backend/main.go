package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/plutoline/crypto_purchase_app/internal/adapters/upstream/coingecko"
	"github.com/plutoline/crypto_purchase_app/internal/adapters/upstream/fxapi"
	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	portssvc "github.com/plutoline/crypto_purchase_app/internal/core/ports/services"
	"github.com/plutoline/crypto_purchase_app/internal/core/services"
	"github.com/plutoline/crypto_purchase_app/internal/handlers"
	"github.com/plutoline/crypto_purchase_app/internal/middleware"
	"github.com/plutoline/crypto_purchase_app/internal/platform/config"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Crypto Purchase API
// @version 1.0
// @description Fee calculator and currency/coin rate proxy for crypto purchases.

// @host localhost:8080
// @BasePath /api
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	codes := make([]domain.CurrencyCode, len(cfg.SupportedCurrencies))
	for i, code := range cfg.SupportedCurrencies {
		codes[i] = domain.CurrencyCode(code)
	}
	currencies, err := domain.NewCurrencySet(domain.CurrencyCode(cfg.PivotCurrency), codes)
	if err != nil {
		logger.Error("Invalid currency configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	snapshotBase := domain.CurrencyCode(cfg.SnapshotBase)
	if !currencies.Contains(snapshotBase) {
		logger.Error("Snapshot base currency is not in the supported set", slog.String("base", cfg.SnapshotBase))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Upstream clients and services
	fxClient := fxapi.NewClient(cfg.FXAPIBaseURL, cfg.UpstreamTimeout)
	coinClient := coingecko.NewClient(cfg.CoinAPIBaseURL, cfg.UpstreamTimeout)

	feeService := services.NewFeeService(domain.FeeSchedule{
		CommissionRate: cfg.CommissionRate,
		PlatformFee:    cfg.PlatformFee,
		GSTRate:        cfg.GSTRate,
		MinPrincipal:   cfg.MinPrincipal,
	})
	ratesService := services.NewRatesService(fxClient, coinClient, currencies, snapshotBase, cfg.FXSource, cfg.CoinSymbolIDs)

	container := &portssvc.ServiceContainer{
		Fee:   feeService,
		Rates: ratesService,
	}
	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
