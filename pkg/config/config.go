package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Ingestion settings.
	HistoricalFetchInterval time.Duration
	MockLatestInterval      time.Duration
	ProviderTimeout         time.Duration
	PerturbBound            float64

	// SnapshotPath is where the mock latest-rate snapshot is persisted.
	SnapshotPath string

	// SeedRatesFile points at an optional JSON seed document loaded at boot.
	// Empty disables seeding.
	SeedRatesFile string

	// RateLimit is an ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("HISTORICAL_FETCH_INTERVAL", "24h")
	viper.SetDefault("MOCK_LATEST_INTERVAL", "10m")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("PERTURB_BOUND", 0.005)
	viper.SetDefault("SNAPSHOT_PATH", "data/latest_snapshot.json")
	viper.SetDefault("SEED_RATES_FILE", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.HistoricalFetchInterval = parseDurationOr("HISTORICAL_FETCH_INTERVAL", 24*time.Hour)
	cfg.MockLatestInterval = parseDurationOr("MOCK_LATEST_INTERVAL", 10*time.Minute)
	cfg.ProviderTimeout = parseDurationOr("PROVIDER_TIMEOUT", 10*time.Second)

	cfg.PerturbBound = viper.GetFloat64("PERTURB_BOUND")
	if cfg.PerturbBound < 0 {
		log.Printf("Warning: Negative PERTURB_BOUND (%v). Defaulting to 0.005.\n", cfg.PerturbBound)
		cfg.PerturbBound = 0.005
	}

	cfg.SnapshotPath = viper.GetString("SNAPSHOT_PATH")
	cfg.SeedRatesFile = viper.GetString("SEED_RATES_FILE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
