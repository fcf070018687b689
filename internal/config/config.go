package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Maps     MapsConfig
	Sim      SimConfig
	LogLevel string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration. The identity store only
// uses Postgres when Enabled is set; Redis is the default backend.
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// MapsConfig holds the Google Maps API key for the geocoding fallback.
// When the key is empty only the static landmark table is consulted.
type MapsConfig struct {
	APIKey string
}

// SimConfig holds the timing constants of the payment and dispatch
// simulations.
type SimConfig struct {
	DispatchDelay        time.Duration // delay before mock requests arrive after going online
	PaymentGatewayDelay  time.Duration // simulated gateway round trip
	PaymentAdvanceDelay  time.Duration // pause on the success screen before driver assignment
	PickupCountdown      int           // ticks to reach the pickup
	DestinationCountdown int           // ticks to reach the destination
	TickInterval         time.Duration
	DefaultRegionLat     float64
	DefaultRegionLng     float64
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Enabled:  getBoolEnv("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "hailsim"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "hailsim"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Maps: MapsConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		},
		Sim: SimConfig{
			DispatchDelay:        getDurationEnv("SIM_DISPATCH_DELAY", 2*time.Second),
			PaymentGatewayDelay:  getDurationEnv("SIM_PAYMENT_GATEWAY_DELAY", 1500*time.Millisecond),
			PaymentAdvanceDelay:  getDurationEnv("SIM_PAYMENT_ADVANCE_DELAY", 2*time.Second),
			PickupCountdown:      getIntEnv("SIM_PICKUP_COUNTDOWN", 10),
			DestinationCountdown: getIntEnv("SIM_DESTINATION_COUNTDOWN", 20),
			TickInterval:         getDurationEnv("SIM_TICK_INTERVAL", time.Second),
			DefaultRegionLat:     getFloatEnv("SIM_DEFAULT_REGION_LAT", 3.1390),
			DefaultRegionLng:     getFloatEnv("SIM_DEFAULT_REGION_LNG", 101.6869),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
