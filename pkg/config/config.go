package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Cart          CartConfig
	Notifications NotificationsConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	if cfg.Notifications.DismissAfter <= 0 {
		return nil, fmt.Errorf("%s must be positive", EnvNotificationDelay)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig points at the promo code table. An empty DSN disables the database and
// the built-in promo table is used instead.
type DBConfig struct {
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) Enabled() bool {
	return strings.TrimSpace(db.DSN) != ""
}

func (db *DBConfig) validate() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	switch db.Driver {
	case DBDriverPostgres, DBDriverSQLite:
		return nil
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvDBDriver, DBDriverPostgres, DBDriverSQLite, db.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether cart sessions should be persisted to Redis.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type CartConfig struct {
	FlatShipping          string        `envconfig:"STOREFRONT_CART_FLAT_SHIPPING" default:"99"`
	FreeShippingThreshold string        `envconfig:"STOREFRONT_CART_FREE_SHIPPING_THRESHOLD" default:"2000"`
	SessionTTL            time.Duration `envconfig:"STOREFRONT_CART_SESSION_TTL" default:"168h"`
}

// Shipping returns the parsed flat shipping fee and free-shipping threshold.
func (c CartConfig) Shipping() (flat, threshold decimal.Decimal, err error) {
	flat, err = decimal.NewFromString(strings.TrimSpace(c.FlatShipping))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("parsing %s: %w", EnvFlatShipping, err)
	}
	threshold, err = decimal.NewFromString(strings.TrimSpace(c.FreeShippingThreshold))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("parsing %s: %w", EnvFreeShipping, err)
	}
	return flat, threshold, nil
}

func (c CartConfig) validate() error {
	flat, threshold, err := c.Shipping()
	if err != nil {
		return err
	}
	if flat.IsNegative() || threshold.IsNegative() {
		return fmt.Errorf("cart shipping values must be non-negative")
	}
	return nil
}

type NotificationsConfig struct {
	DismissAfter time.Duration `envconfig:"STOREFRONT_NOTIFICATIONS_DISMISS_AFTER" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
}
