package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is built once at startup and
// injected into components as an immutable value.
type Config struct {
	Port         string
	IsProduction bool

	CORSAllowedOrigins []string
	RateLimit          string

	// Upstream providers
	FXAPIBaseURL    string
	CoinAPIBaseURL  string
	UpstreamTimeout time.Duration
	FXSource        string

	// Currency routing
	PivotCurrency       string
	SupportedCurrencies []string
	SnapshotBase        string

	// Fee schedule
	CommissionRate decimal.Decimal
	PlatformFee    decimal.Decimal
	GSTRate        decimal.Decimal
	MinPrincipal   decimal.Decimal

	// CoinSymbolIDs maps friendly coin symbols to upstream identifiers.
	CoinSymbolIDs map[string]string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("FX_API_BASE_URL", "https://api.exchangerate.host")
	viper.SetDefault("COIN_API_BASE_URL", "https://api.coingecko.com/api/v3")
	viper.SetDefault("UPSTREAM_TIMEOUT", "5s")
	viper.SetDefault("FX_SOURCE", "exchangerate.host")
	viper.SetDefault("PIVOT_CURRENCY", "USD")
	viper.SetDefault("SUPPORTED_CURRENCIES", "USD,SGD,BTN")
	viper.SetDefault("SNAPSHOT_BASE", "SGD")
	viper.SetDefault("COMMISSION_RATE", "0.03")
	viper.SetDefault("PLATFORM_FEE", "0.99")
	viper.SetDefault("GST_RATE", "0.09")
	viper.SetDefault("MIN_PRINCIPAL", "10")
	viper.SetDefault("COIN_SYMBOL_IDS", map[string]string{
		"BTC":  "bitcoin",
		"ETH":  "ethereum",
		"DOGE": "dogecoin",
		"SOL":  "solana",
	})

	// Environment variables override the defaults above, and a .env file (if
	// present) has already been merged into the environment by godotenv.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.FXAPIBaseURL = strings.TrimRight(viper.GetString("FX_API_BASE_URL"), "/")
	cfg.CoinAPIBaseURL = strings.TrimRight(viper.GetString("COIN_API_BASE_URL"), "/")
	cfg.FXSource = viper.GetString("FX_SOURCE")

	timeoutStr := viper.GetString("UPSTREAM_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 5 * time.Second
		log.Printf("Warning: Invalid value for UPSTREAM_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.UpstreamTimeout = timeout

	cfg.PivotCurrency = strings.ToUpper(viper.GetString("PIVOT_CURRENCY"))
	cfg.SupportedCurrencies = splitAndTrim(strings.ToUpper(viper.GetString("SUPPORTED_CURRENCIES")))
	cfg.SnapshotBase = strings.ToUpper(viper.GetString("SNAPSHOT_BASE"))

	cfg.CommissionRate = decimalOrDefault("COMMISSION_RATE", "0.03")
	cfg.PlatformFee = decimalOrDefault("PLATFORM_FEE", "0.99")
	cfg.GSTRate = decimalOrDefault("GST_RATE", "0.09")
	cfg.MinPrincipal = decimalOrDefault("MIN_PRINCIPAL", "10")

	cfg.CoinSymbolIDs = viper.GetStringMapString("COIN_SYMBOL_IDS")

	return cfg, nil
}

// decimalOrDefault reads a decimal-valued key, falling back to the given
// default when the value does not parse.
func decimalOrDefault(key, fallback string) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		d = decimal.RequireFromString(fallback)
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
	}
	return d
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
