package config

import "time"

// Environment variable names
const (
	EnvPort        = "PORT"
	EnvEnvironment = "ENVIRONMENT"
	EnvVersion     = "APP_VERSION"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvLogDir      = "LOG_DIR"

	EnvTrustedProxies = "TRUSTED_PROXIES"
	EnvRateLimit      = "RATE_LIMIT_PER_WINDOW"

	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBName            = "DB_NAME"
	EnvDBMaxConns        = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime = "DB_MAX_CONN_LIFETIME"

	EnvGridSize           = "GRID_SIZE"
	EnvPlantCost          = "PLANT_COST"
	EnvVirtualToRealRatio = "VIRTUAL_TO_REAL_RATIO"
	EnvInitialCoins       = "INITIAL_COINS"
	EnvDefaultFarmID      = "DEFAULT_FARM_ID"
	EnvFarmName           = "FARM_NAME"
	EnvCropCatalogPath    = "CROP_CATALOG_PATH"

	EnvReconcileInterval = "GROWTH_RECONCILE_INTERVAL"
	EnvMinStepDelay      = "GROWTH_MIN_STEP_DELAY"

	EnvEventMaxRetries = "EVENT_MAX_RETRIES"
	EnvEventRetryDelay = "EVENT_RETRY_DELAY"
	EnvDeadLetterPath  = "EVENT_DEADLETTER_PATH"

	EnvEventLogRetention       = "EVENT_LOG_RETENTION"
	EnvEventLogCleanupInterval = "EVENT_LOG_CLEANUP_INTERVAL"

	EnvClaimCacheTTL  = "CLAIM_CACHE_TTL"
	EnvClaimCacheSize = "CLAIM_CACHE_SIZE"

	EnvDiscordWebhookID    = "DISCORD_WEBHOOK_ID"
	EnvDiscordWebhookToken = "DISCORD_WEBHOOK_TOKEN"

	EnvSchemaVersion = "ENV_SCHEMA_VERSION"
)

// Defaults
const (
	DefaultPort              = 8080
	DefaultRateLimit         = 1000
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultCropCatalogPath   = "configs/crops.json"
	DefaultReconcileInterval = time.Minute
	DefaultEventMaxRetries   = 5
	DefaultEventRetryDelay   = 2 * time.Second
	DefaultDeadLetterPath    = "logs/event_deadletter.jsonl"
	DefaultClaimCacheTTL     = 10 * time.Minute
	DefaultClaimCacheSize    = 1024

	DefaultEventLogRetention       = 30 * 24 * time.Hour
	DefaultEventLogCleanupInterval = 24 * time.Hour
)
