// README: Config loader with env defaults for HTTP, maps providers, datasets, Redis and Postgres.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type MapsConfig struct {
	// Provider is the default provider name: ola, ors or google.
	Provider          string
	OlaAPIKey         string
	OlaBaseURL        string
	ORSAPIKey         string
	ORSBaseURL        string
	GoogleAPIKey      string
	GeocodeTimeout    time.Duration
	DirectionsTimeout time.Duration
	ReverseTimeout    time.Duration
	GeocodeCacheTTL   time.Duration
}

type DatasetConfig struct {
	TollPath          string
	FuelPath          string
	TollThresholdKm   float64
	DefaultFuelRegion string
	FallbackFuelPrice float64
}

type Config struct {
	Env  string
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps     MapsConfig
	Datasets DatasetConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.Env = envOrDefault("TRIPCOST_ENV", "development")
	cfg.HTTP.Addr = envOrDefault("TRIPCOST_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("TRIPCOST_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TRIPCOST_REDIS_ADDR")

	cfg.Maps.Provider = envOrDefault("TRIPCOST_MAPS_PROVIDER", "ola")
	cfg.Maps.OlaAPIKey = os.Getenv("TRIPCOST_OLA_API_KEY")
	cfg.Maps.OlaBaseURL = envOrDefault("TRIPCOST_OLA_BASE_URL", "https://api.olamaps.io")
	cfg.Maps.ORSAPIKey = os.Getenv("TRIPCOST_ORS_API_KEY")
	cfg.Maps.ORSBaseURL = envOrDefault("TRIPCOST_ORS_BASE_URL", "https://api.openrouteservice.org")
	cfg.Maps.GoogleAPIKey = os.Getenv("TRIPCOST_GOOGLE_MAPS_API_KEY")
	cfg.Maps.GeocodeTimeout = envOrDefaultDuration("TRIPCOST_GEOCODE_TIMEOUT", 20*time.Second)
	cfg.Maps.DirectionsTimeout = envOrDefaultDuration("TRIPCOST_DIRECTIONS_TIMEOUT", 30*time.Second)
	cfg.Maps.ReverseTimeout = envOrDefaultDuration("TRIPCOST_REVERSE_TIMEOUT", 10*time.Second)
	cfg.Maps.GeocodeCacheTTL = envOrDefaultDuration("TRIPCOST_GEOCODE_CACHE_TTL", 24*time.Hour)

	cfg.Datasets.TollPath = os.Getenv("TRIPCOST_TOLL_DATA_PATH")
	cfg.Datasets.FuelPath = os.Getenv("TRIPCOST_FUEL_DATA_PATH")
	cfg.Datasets.TollThresholdKm = envOrDefaultFloat("TRIPCOST_TOLL_THRESHOLD_KM", 2.0)
	cfg.Datasets.DefaultFuelRegion = envOrDefault("TRIPCOST_DEFAULT_FUEL_REGION", "Delhi")
	cfg.Datasets.FallbackFuelPrice = envOrDefaultFloat("TRIPCOST_FALLBACK_FUEL_PRICE", 110.0)

	if err := cfg.Maps.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate fails when the default provider has no API key configured.
func (m MapsConfig) validate() error {
	var key string
	switch m.Provider {
	case "ola":
		key = m.OlaAPIKey
	case "ors":
		key = m.ORSAPIKey
	case "google":
		key = m.GoogleAPIKey
	default:
		return fmt.Errorf("unknown maps provider %q (want ola, ors or google)", m.Provider)
	}
	if key == "" {
		return fmt.Errorf("api key for maps provider %q is required", m.Provider)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
