package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "foodgo"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv       = "FOODGO_APP_ENV"
	EnvPort         = "FOODGO_APP_PORT"
	EnvDBDSN        = "FOODGO_DB_DSN"
	EnvDBHost       = "FOODGO_DB_HOST"
	EnvDBUser       = "FOODGO_DB_USER"
	EnvDBName       = "FOODGO_DB_NAME"
	EnvRedisURL     = "FOODGO_REDIS_URL"
	EnvJWTSecret    = "FOODGO_JWT_SECRET"
	EnvJWTIssuer    = "FOODGO_JWT_ISSUER"
	EnvJWTExpMins   = "FOODGO_JWT_EXPIRATION_MINUTES"
	EnvUseSQLite    = "FOODGO_USE_SQLITE"
	EnvAutoMigrate  = "FOODGO_AUTO_MIGRATE"
	EnvDeliveryFee  = "FOODGO_PRICING_DELIVERY_FEE"
	EnvOrderTax     = "FOODGO_PRICING_TAX"
	EnvDeliveryMins = "FOODGO_PRICING_DELIVERY_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	PasswordReset PasswordResetConfig
	Pricing       PricingConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// The sqlite flag short-circuits the postgres DSN requirements so a local
	// run needs no database server.
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = "foodgo.db"
		}
		return &cfg, nil
	}

	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FOODGO_APP_ENV" required:"true"`
	Port         string `envconfig:"FOODGO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FOODGO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODGO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FOODGO_DB_DSN"`
	Driver string `envconfig:"FOODGO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FOODGO_DB_HOST"`
	LegacyPort     int    `envconfig:"FOODGO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FOODGO_DB_USER"`
	LegacyPassword string `envconfig:"FOODGO_DB_PASSWORD"`
	LegacyName     string `envconfig:"FOODGO_DB_NAME"`
	LegacySSLMode  string `envconfig:"FOODGO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FOODGO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FOODGO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FOODGO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODGO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FOODGO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FOODGO_REDIS_ADDR"`
	Password     string        `envconfig:"FOODGO_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODGO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODGO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODGO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODGO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODGO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODGO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FOODGO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FOODGO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FOODGO_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FOODGO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FOODGO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FOODGO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FOODGO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FOODGO_ARGON_KEY_LEN" default:"32"`
}

type PasswordResetConfig struct {
	CodeLength int           `envconfig:"FOODGO_PASSWORD_RESET_CODE_LENGTH" default:"6"`
	CodeTTL    time.Duration `envconfig:"FOODGO_PASSWORD_RESET_CODE_TTL" default:"15m"`
}

// PricingConfig carries the flat cart fee policy applied to non-empty carts.
type PricingConfig struct {
	DeliveryFee              string `envconfig:"FOODGO_PRICING_DELIVERY_FEE" default:"1.50"`
	Tax                      string `envconfig:"FOODGO_PRICING_TAX" default:"0.30"`
	EstimatedDeliveryMinutes int    `envconfig:"FOODGO_PRICING_DELIVERY_MINUTES" default:"15"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FOODGO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FOODGO_AUTO_MIGRATE" default:"false"`
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
