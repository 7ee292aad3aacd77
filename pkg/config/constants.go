package config

// EnvPrefix is empty because every variable below carries its own STOREFRONT_ prefix.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv            = "STOREFRONT_APP_ENV"
	EnvPort              = "STOREFRONT_APP_PORT"
	EnvLogLevel          = "STOREFRONT_LOG_LEVEL"
	EnvLogFormat         = "STOREFRONT_LOG_FORMAT"
	EnvDBDriver          = "STOREFRONT_DB_DRIVER"
	EnvDBDSN             = "STOREFRONT_DB_DSN"
	EnvRedisURL          = "STOREFRONT_REDIS_URL"
	EnvRedisAddr         = "STOREFRONT_REDIS_ADDR"
	EnvFlatShipping      = "STOREFRONT_CART_FLAT_SHIPPING"
	EnvFreeShipping      = "STOREFRONT_CART_FREE_SHIPPING_THRESHOLD"
	EnvCartSessionTTL    = "STOREFRONT_CART_SESSION_TTL"
	EnvNotificationDelay = "STOREFRONT_NOTIFICATIONS_DISMISS_AFTER"
	EnvAutoMigrate       = "STOREFRONT_AUTO_MIGRATE"
	EnvCORSOrigins       = "STOREFRONT_CORS_ORIGINS"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)
