package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Service  ServiceConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CartAPI  CartAPIConfig
	CartSync CartSyncConfig
	Shipping ShippingConfig
	Cron     CronConfig
	Features FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GIFTNEST_APP_ENV" required:"true"`
	Port         string `envconfig:"GIFTNEST_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GIFTNEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GIFTNEST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"GIFTNEST_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"GIFTNEST_DB_DSN"`
	Driver string `envconfig:"GIFTNEST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GIFTNEST_DB_HOST"`
	LegacyPort     int    `envconfig:"GIFTNEST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GIFTNEST_DB_USER"`
	LegacyPassword string `envconfig:"GIFTNEST_DB_PASSWORD"`
	LegacyName     string `envconfig:"GIFTNEST_DB_NAME"`
	LegacySSLMode  string `envconfig:"GIFTNEST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GIFTNEST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GIFTNEST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GIFTNEST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GIFTNEST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GIFTNEST_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GIFTNEST_REDIS_ADDR"`
	Password     string        `envconfig:"GIFTNEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"GIFTNEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GIFTNEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GIFTNEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GIFTNEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GIFTNEST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GIFTNEST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GIFTNEST_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GIFTNEST_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GIFTNEST_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"GIFTNEST_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

// CartAPIConfig points the cart session client at the remote cart resource.
type CartAPIConfig struct {
	BaseURL        string        `envconfig:"GIFTNEST_CART_API_BASE_URL"`
	RequestTimeout time.Duration `envconfig:"GIFTNEST_CART_API_TIMEOUT" default:"10s"`
}

// CartSyncConfig controls the batched cart flush loop.
type CartSyncConfig struct {
	FlushInterval   time.Duration `envconfig:"GIFTNEST_CART_FLUSH_INTERVAL" default:"5s"`
	TeardownTimeout time.Duration `envconfig:"GIFTNEST_CART_TEARDOWN_TIMEOUT" default:"2s"`
	RetryAttempts   uint64        `envconfig:"GIFTNEST_CART_FLUSH_RETRY_ATTEMPTS" default:"3"`
	RetryBaseDelay  time.Duration `envconfig:"GIFTNEST_CART_FLUSH_RETRY_BASE_DELAY" default:"100ms"`
}

// ShippingConfig holds the adjustment table used by the totals calculator.
type ShippingConfig struct {
	ExpressSurchargeCents int64  `envconfig:"GIFTNEST_SHIPPING_EXPRESS_SURCHARGE_CENTS" default:"1500"`
	PickupDiscountPercent string `envconfig:"GIFTNEST_SHIPPING_PICKUP_DISCOUNT_PERCENT" default:"5"`
}

type CronConfig struct {
	Interval        time.Duration `envconfig:"GIFTNEST_CRON_INTERVAL" default:"1h"`
	CartStaleAfter  time.Duration `envconfig:"GIFTNEST_CRON_CART_STALE_AFTER" default:"720h"`
	OrderPendingTTL time.Duration `envconfig:"GIFTNEST_CRON_ORDER_PENDING_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GIFTNEST_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GIFTNEST_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
