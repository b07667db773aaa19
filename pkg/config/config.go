package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is passed to envconfig; fields carry fully-qualified
// POUNDTOWN_* names so the prefix itself stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Printful     PrintfulConfig
	Cart         CartConfig
	Catalog      CatalogConfig
	Blog         BlogConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Printful.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POUNDTOWN_APP_ENV" default:"dev"`
	Port         string `envconfig:"POUNDTOWN_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"POUNDTOWN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POUNDTOWN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"POUNDTOWN_DB_DSN"`
	Driver string `envconfig:"POUNDTOWN_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"POUNDTOWN_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"POUNDTOWN_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"POUNDTOWN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"POUNDTOWN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"POUNDTOWN_REDIS_URL"`
	Address      string        `envconfig:"POUNDTOWN_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"POUNDTOWN_REDIS_PASSWORD"`
	DB           int           `envconfig:"POUNDTOWN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POUNDTOWN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POUNDTOWN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POUNDTOWN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POUNDTOWN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"POUNDTOWN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type PrintfulConfig struct {
	APIToken string        `envconfig:"POUNDTOWN_PRINTFUL_API_TOKEN"`
	BaseURL  string        `envconfig:"POUNDTOWN_PRINTFUL_BASE_URL" default:"https://api.printful.com"`
	Timeout  time.Duration `envconfig:"POUNDTOWN_PRINTFUL_TIMEOUT" default:"15s"`
}

func (p PrintfulConfig) validate() error {
	if strings.TrimSpace(p.APIToken) == "" {
		return fmt.Errorf("POUNDTOWN_PRINTFUL_API_TOKEN is required")
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("POUNDTOWN_PRINTFUL_BASE_URL cannot be blank")
	}
	return nil
}

type CartConfig struct {
	CookieName   string        `envconfig:"POUNDTOWN_CART_COOKIE_NAME" default:"pt_cart"`
	SessionTTL   time.Duration `envconfig:"POUNDTOWN_CART_SESSION_TTL" default:"720h"`
	CookieSecure bool          `envconfig:"POUNDTOWN_CART_COOKIE_SECURE" default:"false"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"POUNDTOWN_CATALOG_CACHE_TTL" default:"1h"`
}

type BlogConfig struct {
	ContentDir string `envconfig:"POUNDTOWN_BLOG_CONTENT_DIR" default:"content/blog"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"POUNDTOWN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"POUNDTOWN_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"POUNDTOWN_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
