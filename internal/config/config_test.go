package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		AppPort:         "8080",
		DBDriver:        DriverSQLite,
		DBPath:          "./test.db",
		JWTSecret:       "secret",
		ForecastMonths:  6,
		HistoryMonths:   3,
		ForecastDamping: decimal.RequireFromString("0.3"),
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "JWT_TTL_HOURS", "CACHE_TTL_SECONDS",
		"FORECAST_MONTHS", "FORECAST_HISTORY_MONTHS", "FORECAST_DAMPING", "DEFAULT_CURRENCY", "IS_PROD"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, 6, cfg.ForecastMonths)
	assert.Equal(t, 3, cfg.HistoryMonths)
	assert.True(t, cfg.ForecastDamping.Equal(decimal.RequireFromString("0.3")))
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/ledger.db")
	t.Setenv("FORECAST_DAMPING", "0.5")
	t.Setenv("FORECAST_MONTHS", "12")
	t.Setenv("FORECAST_HISTORY_MONTHS", "not-a-number")
	t.Setenv("IS_PROD", "true")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("CACHE_TTL_SECONDS", "5")

	cfg := LoadConfig()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/ledger.db", cfg.DSN())
	assert.True(t, cfg.ForecastDamping.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, 12, cfg.ForecastMonths)
	assert.Equal(t, 3, cfg.HistoryMonths)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.IsProd)
}

func TestConfig_DSN_MySQL(t *testing.T) {
	cfg := Config{DBDriver: DriverMySQL, DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: "3306", DBName: "finance"}

	assert.Equal(t, "app:pw@tcp(db:3306)/finance?parseTime=true&loc=UTC", cfg.DSN())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid sqlite config", mutate: func(c *Config) {}},
		{name: "valid mysql config", mutate: func(c *Config) { c.DBDriver = DriverMySQL; c.DBName = "finance" }},
		{name: "non-numeric port", mutate: func(c *Config) { c.AppPort = "abc" }, wantErr: "invalid APP_PORT 'abc': must be a number"},
		{name: "port out of range", mutate: func(c *Config) { c.AppPort = "70000" }, wantErr: "invalid APP_PORT 70000: must be between 1 and 65535"},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "postgres" }, wantErr: "invalid DB_DRIVER 'postgres': must be one of [mysql sqlite]"},
		{name: "mysql without database name", mutate: func(c *Config) { c.DBDriver = DriverMySQL }, wantErr: "DB_NAME is required for the mysql driver"},
		{name: "sqlite without path", mutate: func(c *Config) { c.DBPath = "" }, wantErr: "DB_PATH is required for the sqlite driver"},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET is required"},
		{name: "zero forecast months", mutate: func(c *Config) { c.ForecastMonths = 0 }, wantErr: "forecast months and history months must be at least 1"},
		{name: "damping above one", mutate: func(c *Config) { c.ForecastDamping = decimal.RequireFromString("1.5") }, wantErr: "invalid FORECAST_DAMPING 1.5: must be between 0 and 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}
