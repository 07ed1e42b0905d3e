package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/gauss2302/agrogame/internal/database"
	"github.com/gauss2302/agrogame/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	Version     string
	LogLevel    string
	LogFormat   string
	LogDir      string

	// HTTP edge
	TrustedProxies []string
	RateLimit      int

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Farm rules
	GridSize           int
	PlantCost          int
	VirtualToRealRatio int
	InitialCoins       int
	DefaultFarmID      int64
	FarmName           string
	CropCatalogPath    string

	// Growth worker
	ReconcileInterval time.Duration
	MinStepDelay      time.Duration

	// Event publishing
	EventMaxRetries int
	EventRetryDelay time.Duration
	DeadLetterPath  string

	// Claim idempotency cache
	ClaimCacheTTL  time.Duration
	ClaimCacheSize int

	// Farm event audit log, pruned by a scheduled job
	EventLogRetention       time.Duration
	EventLogCleanupInterval time.Duration

	// Optional Discord webhook for delivery notifications
	DiscordWebhookID    string
	DiscordWebhookToken string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env is fine, real env vars may be set instead
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv(EnvEnvironment, "dev"),
		Version:     getEnv(EnvVersion, "dev"),
		LogLevel:    getEnv(EnvLogLevel, "info"),
		LogFormat:   getEnv(EnvLogFormat, "text"),
		LogDir:      getEnv(EnvLogDir, "logs"),

		DBUser:     getEnv(EnvDBUser, "postgres"),
		DBPassword: getEnv(EnvDBPassword, "postgres"),
		DBHost:     getEnv(EnvDBHost, "localhost"),
		DBPort:     getEnv(EnvDBPort, "5432"),
		DBName:     getEnv(EnvDBName, "agrogame"),

		FarmName:        getEnv(EnvFarmName, domain.DefaultFarmName),
		CropCatalogPath: getEnv(EnvCropCatalogPath, DefaultCropCatalogPath),
		DeadLetterPath:  getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),

		DiscordWebhookID:    getEnv(EnvDiscordWebhookID, ""),
		DiscordWebhookToken: getEnv(EnvDiscordWebhookToken, ""),
	}

	p := parser{}
	cfg.Port = p.getInt(EnvPort, DefaultPort)
	cfg.TrustedProxies = splitList(getEnv(EnvTrustedProxies, ""))
	cfg.RateLimit = p.getInt(EnvRateLimit, DefaultRateLimit)
	cfg.DBMaxConns = p.getInt(EnvDBMaxConns, DefaultDBMaxConns)
	cfg.DBMaxConnIdleTime = p.getDuration(EnvDBMaxConnIdleTime, DefaultDBMaxConnIdleTime)
	cfg.DBMaxConnLifetime = p.getDuration(EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime)

	cfg.GridSize = p.getInt(EnvGridSize, domain.DefaultGridSize)
	cfg.PlantCost = p.getInt(EnvPlantCost, domain.DefaultPlantCost)
	cfg.VirtualToRealRatio = p.getInt(EnvVirtualToRealRatio, domain.DefaultVirtualToRealRatio)
	cfg.InitialCoins = p.getInt(EnvInitialCoins, domain.DefaultInitialCoins)
	cfg.DefaultFarmID = p.getInt64(EnvDefaultFarmID, domain.DefaultFarmID)

	cfg.ReconcileInterval = p.getDuration(EnvReconcileInterval, DefaultReconcileInterval)
	cfg.MinStepDelay = p.getDuration(EnvMinStepDelay, 0)

	cfg.EventMaxRetries = p.getInt(EnvEventMaxRetries, DefaultEventMaxRetries)
	cfg.EventRetryDelay = p.getDuration(EnvEventRetryDelay, DefaultEventRetryDelay)

	cfg.EventLogRetention = p.getDuration(EnvEventLogRetention, DefaultEventLogRetention)
	cfg.EventLogCleanupInterval = p.getDuration(EnvEventLogCleanupInterval, DefaultEventLogCleanupInterval)

	cfg.ClaimCacheTTL = p.getDuration(EnvClaimCacheTTL, DefaultClaimCacheTTL)
	cfg.ClaimCacheSize = p.getInt(EnvClaimCacheSize, DefaultClaimCacheSize)

	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	return cfg, nil
}

// Validate rejects farm rules the service cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.GridSize <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvGridSize, c.GridSize))
	}
	if c.PlantCost <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvPlantCost, c.PlantCost))
	}
	if c.VirtualToRealRatio <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvVirtualToRealRatio, c.VirtualToRealRatio))
	}
	if c.InitialCoins < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", EnvInitialCoins, c.InitialCoins))
	}
	if c.DefaultFarmID <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvDefaultFarmID, c.DefaultFarmID))
	}
	if c.ReconcileInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %s", EnvReconcileInterval, c.ReconcileInterval))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvRateLimit, c.RateLimit))
	}
	if c.EventLogRetention <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %s", EnvEventLogRetention, c.EventLogRetention))
	}
	if c.EventLogCleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %s", EnvEventLogCleanupInterval, c.EventLogCleanupInterval))
	}
	if c.MinStepDelay < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %s", EnvMinStepDelay, c.MinStepDelay))
	}
	return errors.Join(errs...)
}

// FarmOptions returns the farm rule constants carried by the config
func (c *Config) FarmOptions() domain.FarmOptions {
	return domain.FarmOptions{
		GridSize:           c.GridSize,
		PlantCost:          c.PlantCost,
		VirtualToRealRatio: c.VirtualToRealRatio,
		InitialCoins:       c.InitialCoins,
		FarmName:           c.FarmName,
	}
}

// DiscordEnabled reports whether both webhook credentials are set
func (c *Config) DiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}

// PoolConfig returns the database pool settings
func (c *Config) PoolConfig() database.PoolConfig {
	return database.PoolConfig{
		ConnString:      c.GetDBConnString(),
		MaxConns:        c.DBMaxConns,
		MaxConnIdleTime: c.DBMaxConnIdleTime,
		MaxConnLifetime: c.DBMaxConnLifetime,
	}
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// splitList parses a comma separated variable, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser collects every malformed variable instead of stopping at the first
type parser struct {
	errs []error
}

func (p *parser) getInt(key string, def int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s value: %w", key, err))
		return def
	}
	return v
}

func (p *parser) getInt64(key string, def int64) int64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s value: %w", key, err))
		return def
	}
	return v
}

func (p *parser) getDuration(key string, def time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s value: %w", key, err))
		return def
	}
	return v
}
