package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the koko-pic backend.
// It includes the environment, monitoring server port, geocoding provider
// selection, enrichment worker settings, the map's fallback center and the
// database configuration.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The port for the monitoring server.
// - ProviderType: The type of geocoding provider to use (google, nominatim).
// - APIKey: The API key for accessing external services (required for Google).
// - Workers: The number of concurrent place-lookup workers.
// - Interval: The duration between enrichment polling intervals.
// - Language: The preferred language for geocoding results.
// - DefaultCenter: The map center used before any location fix exists.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env           string         // Env is the current environment: local, dev, prod.
	Port          int            // Port is the monitoring server port.
	ProviderType  string         // ProviderType specifies which geocoding provider to use.
	APIKey        string         // The API key for accessing external services.
	Workers       int            // The number of concurrent place-lookup workers.
	Interval      time.Duration  // The duration between enrichment polling intervals.
	Language      string         // Preferred language for geocoding results.
	DefaultCenter CenterConfig   // Map center used before any location fix exists.
	Database      PostgresConfig // Database holds the postgres database configuration.
}

// CenterConfig is the fallback map center.
type CenterConfig struct {
	Latitude  float64
	Longitude float64
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration from the environment and returns a Config
// struct. A .env file is honored when present. It panics when a required
// value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("KOKO_ENV", "production")
	v.SetDefault("KOKO_HEALTH_PORT", 8080)
	v.SetDefault("KOKO_PROVIDER_TYPE", "nominatim")
	v.SetDefault("KOKO_WORKERS", 10)
	v.SetDefault("KOKO_INTERVAL", "10m")
	v.SetDefault("KOKO_LANGUAGE", "ja")
	// Tokyo Station, matching the map's out-of-the-box view.
	v.SetDefault("KOKO_DEFAULT_CENTER_LAT", 35.6812)
	v.SetDefault("KOKO_DEFAULT_CENTER_LNG", 139.7671)
	v.SetDefault("DB_PORT", "5432")

	interval, err := time.ParseDuration(v.GetString("KOKO_INTERVAL"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	workers := v.GetInt("KOKO_WORKERS")
	if workers <= 0 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	return &Config{
		Env:          v.GetString("KOKO_ENV"),
		Port:         v.GetInt("KOKO_HEALTH_PORT"),
		ProviderType: v.GetString("KOKO_PROVIDER_TYPE"),
		APIKey:       v.GetString("KOKO_PROVIDER_KEY"),
		Workers:      workers,
		Interval:     interval,
		Language:     v.GetString("KOKO_LANGUAGE"),
		DefaultCenter: CenterConfig{
			Latitude:  v.GetFloat64("KOKO_DEFAULT_CENTER_LAT"),
			Longitude: v.GetFloat64("KOKO_DEFAULT_CENTER_LNG"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
	}
}
