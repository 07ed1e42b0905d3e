package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvVars = []string{
	EnvPort, EnvEnvironment, EnvVersion, EnvLogLevel, EnvLogFormat, EnvLogDir,
	EnvTrustedProxies, EnvRateLimit,
	EnvDBUser, EnvDBPassword, EnvDBHost, EnvDBPort, EnvDBName,
	EnvDBMaxConns, EnvDBMaxConnIdleTime, EnvDBMaxConnLifetime,
	EnvGridSize, EnvPlantCost, EnvVirtualToRealRatio, EnvInitialCoins,
	EnvDefaultFarmID, EnvFarmName, EnvCropCatalogPath,
	EnvReconcileInterval, EnvMinStepDelay,
	EnvEventMaxRetries, EnvEventRetryDelay, EnvDeadLetterPath,
	EnvEventLogRetention, EnvEventLogCleanupInterval,
	EnvClaimCacheTTL, EnvClaimCacheSize,
	EnvDiscordWebhookID, EnvDiscordWebhookToken, EnvSchemaVersion,
}

// clearEnvVars unsets every variable the config reads and restores them after the test
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults match the stock farm rules", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "agrogame", cfg.DBName)

		assert.Equal(t, 5, cfg.GridSize)
		assert.Equal(t, 5, cfg.PlantCost)
		assert.Equal(t, 100, cfg.VirtualToRealRatio)
		assert.Equal(t, 100, cfg.InitialCoins)
		assert.Equal(t, int64(1), cfg.DefaultFarmID)
		assert.Equal(t, "My Farm", cfg.FarmName)

		assert.Equal(t, time.Minute, cfg.ReconcileInterval)
		assert.Zero(t, cfg.MinStepDelay)
		assert.Equal(t, 10*time.Minute, cfg.ClaimCacheTTL)
		assert.Equal(t, 1000, cfg.RateLimit)
		assert.Equal(t, 30*24*time.Hour, cfg.EventLogRetention)
		assert.Empty(t, cfg.TrustedProxies)
		assert.False(t, cfg.DiscordEnabled())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("reads overrides", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvPort, "3000")
		t.Setenv(EnvLogFormat, "json")
		t.Setenv(EnvDBHost, "db.example.com")
		t.Setenv(EnvGridSize, "3")
		t.Setenv(EnvVirtualToRealRatio, "10")
		t.Setenv(EnvDefaultFarmID, "42")
		t.Setenv(EnvFarmName, "Back Forty")
		t.Setenv(EnvMinStepDelay, "100ms")
		t.Setenv(EnvDBMaxConnIdleTime, "90s")
		t.Setenv(EnvDiscordWebhookID, "123")
		t.Setenv(EnvDiscordWebhookToken, "abc")
		t.Setenv(EnvTrustedProxies, " 10.0.0.1, ,10.0.0.2 ")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Equal(t, 100*time.Millisecond, cfg.MinStepDelay)
		assert.Equal(t, 90*time.Second, cfg.DBMaxConnIdleTime)
		assert.True(t, cfg.DiscordEnabled())
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)

		opts := cfg.FarmOptions()
		assert.Equal(t, 3, opts.GridSize)
		assert.Equal(t, 9, opts.PlotCount())
		assert.Equal(t, 10, opts.VirtualToRealRatio)
		assert.Equal(t, "Back Forty", opts.FarmName)
		assert.Equal(t, int64(42), cfg.DefaultFarmID)
	})

	t.Run("reports every malformed value", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvPort, "not-a-number")
		t.Setenv(EnvReconcileInterval, "soon")
		t.Setenv(EnvDefaultFarmID, "1.5")

		cfg, err := Load()
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid PORT")
		assert.Contains(t, err.Error(), "invalid GROWTH_RECONCILE_INTERVAL")
		assert.Contains(t, err.Error(), "invalid DEFAULT_FARM_ID")
	})

	t.Run("port edge cases", func(t *testing.T) {
		testCases := []struct {
			name        string
			portValue   string
			shouldError bool
		}{
			{"zero port", "0", false},
			{"max valid port", "65535", false},
			{"float port", "8080.5", true},
			{"empty string", "", true},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				clearEnvVars(t)
				t.Setenv(EnvPort, tc.portValue)

				_, err := Load()
				if tc.shouldError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			GridSize:           5,
			PlantCost:          5,
			VirtualToRealRatio: 100,
			InitialCoins:       0,
			DefaultFarmID:      1,
			ReconcileInterval:  time.Minute,
			RateLimit:          10,

			EventLogRetention:       time.Hour,
			EventLogCleanupInterval: time.Hour,
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero grid", func(c *Config) { c.GridSize = 0 }, EnvGridSize},
		{"zero cost", func(c *Config) { c.PlantCost = 0 }, EnvPlantCost},
		{"zero ratio", func(c *Config) { c.VirtualToRealRatio = 0 }, EnvVirtualToRealRatio},
		{"negative coins", func(c *Config) { c.InitialCoins = -1 }, EnvInitialCoins},
		{"zero farm id", func(c *Config) { c.DefaultFarmID = 0 }, EnvDefaultFarmID},
		{"zero reconcile", func(c *Config) { c.ReconcileInterval = 0 }, EnvReconcileInterval},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }, EnvRateLimit},
		{"zero event retention", func(c *Config) { c.EventLogRetention = 0 }, EnvEventLogRetention},
		{"zero cleanup interval", func(c *Config) { c.EventLogCleanupInterval = 0 }, EnvEventLogCleanupInterval},
		{"negative step delay", func(c *Config) { c.MinStepDelay = -time.Millisecond }, EnvMinStepDelay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "farmer",
		DBPassword: "p@ss:word",
		DBHost:     "db.example.com",
		DBPort:     "5433",
		DBName:     "agrogame",
	}
	assert.Equal(t, "postgres://farmer:p@ss:word@db.example.com:5433/agrogame?sslmode=disable", cfg.GetDBConnString())
}

func TestPoolConfig(t *testing.T) {
	cfg := &Config{
		DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5433", DBName: "farm",
		DBMaxConns:        7,
		DBMaxConnIdleTime: time.Minute,
		DBMaxConnLifetime: time.Hour,
	}

	pc := cfg.PoolConfig()
	assert.Equal(t, "postgres://u:p@h:5433/farm?sslmode=disable", pc.ConnString)
	assert.Equal(t, 7, pc.MaxConns)
	assert.Equal(t, time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
}
