package config

import (
	"fmt"     // Error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // TTL durations

	"github.com/joho/godotenv"      // For loading .env files
	"github.com/shopspring/decimal" // Forecast damping factor
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"  // Production store
	DriverSQLite = "sqlite" // Local development and tests
)

// Config holds the application configuration
type Config struct {
	AppPort         string          // Application port
	DBDriver        string          // Database driver: mysql or sqlite
	DBUser          string          // Database user
	DBPassword      string          // Database password
	DBHost          string          // Database host
	DBPort          string          // Database port
	DBName          string          // Database name
	DBPath          string          // SQLite file path
	JWTSecret       string          // JWT secret key
	JWTTTL          time.Duration   // Lifetime of issued tokens
	RedisAddr       string          // Redis server address, empty disables caching
	RedisPass       string          // Redis password
	RedisDB         int             // Redis database number
	CacheTTL        time.Duration   // Read cache TTL
	ForecastMonths  int             // Default forecast horizon
	HistoryMonths   int             // Trailing months averaged by the forecast
	ForecastDamping decimal.Decimal // Share of historical spending assumed to persist
	DefaultCurrency string          // Currency for seeded users
	IsProd          bool            // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	jwtTTL := time.Duration(getIntOrDefault("JWT_TTL_HOURS", 24)) * time.Hour         // Token lifetime
	cacheTTL := time.Duration(getIntOrDefault("CACHE_TTL_SECONDS", 60)) * time.Second // Read cache lifetime
	return &Config{
		AppPort:         getEnvOrDefault("APP_PORT", "8080"),             // Application port
		DBDriver:        getEnvOrDefault("DB_DRIVER", DriverMySQL),       // Database driver
		DBUser:          os.Getenv("DB_USER"),                            // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),                        // Database password
		DBHost:          getEnvOrDefault("DB_HOST", "127.0.0.1"),         // Database host
		DBPort:          getEnvOrDefault("DB_PORT", "3306"),              // Database port
		DBName:          os.Getenv("DB_NAME"),                            // Database name
		DBPath:          getEnvOrDefault("DB_PATH", "./data/finance.db"), // SQLite file
		JWTSecret:       os.Getenv("JWT_SECRET"),                         // JWT secret key
		JWTTTL:          jwtTTL,                                          // Token lifetime
		RedisAddr:       os.Getenv("REDIS_ADDR"),                         // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),                         // Redis password
		RedisDB:         redisDB,                                         // Redis database number
		CacheTTL:        cacheTTL,                                        // Cache TTL
		ForecastMonths:  getIntOrDefault("FORECAST_MONTHS", 6),           // Forecast horizon
		HistoryMonths:   getIntOrDefault("FORECAST_HISTORY_MONTHS", 3),   // History window
		ForecastDamping: getDecimalOrDefault("FORECAST_DAMPING", "0.3"),  // Damping factor
		DefaultCurrency: getEnvOrDefault("DEFAULT_CURRENCY", "USD"),      // Seed currency
		IsProd:          os.Getenv("IS_PROD") == "true",                  // Is production environment
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.DBPath // The sqlite driver takes a file path
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=UTC"
}

// Validate reports the first configuration problem found
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.AppPort)
	if err != nil {
		return fmt.Errorf("invalid APP_PORT '%s': must be a number", c.AppPort)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid APP_PORT %d: must be between 1 and 65535", port)
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required for the mysql driver")
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER '%s': must be one of [mysql sqlite]", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.ForecastMonths < 1 || c.HistoryMonths < 1 {
		return fmt.Errorf("forecast months and history months must be at least 1")
	}
	if c.ForecastDamping.IsNegative() || c.ForecastDamping.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("invalid FORECAST_DAMPING %s: must be between 0 and 1", c.ForecastDamping)
	}
	return nil
}

// getEnvOrDefault returns the variable or def when it is unset
func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getIntOrDefault parses an integer variable, falling back to def on absence or garbage
func getIntOrDefault(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// getDecimalOrDefault parses a decimal variable, falling back to def on absence or garbage
func getDecimalOrDefault(key, def string) decimal.Decimal {
	if d, err := decimal.NewFromString(os.Getenv(key)); err == nil {
		return d
	}
	return decimal.RequireFromString(def)
}
