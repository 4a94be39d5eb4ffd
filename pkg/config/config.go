package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Identity IdentityConfig
	Webhook  WebhookConfig
	Campaign CampaignConfig
	CORS     CORSConfig
	Flags    FlagsConfig
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
	Env          string `envconfig:"ADMASTER_APP_ENV" required:"true"`
	Port         string `envconfig:"ADMASTER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ADMASTER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ADMASTER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ADMASTER_DB_DSN"`
	Driver string `envconfig:"ADMASTER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ADMASTER_DB_HOST"`
	LegacyPort     int    `envconfig:"ADMASTER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ADMASTER_DB_USER"`
	LegacyPassword string `envconfig:"ADMASTER_DB_PASSWORD"`
	LegacyName     string `envconfig:"ADMASTER_DB_NAME"`
	LegacySSLMode  string `envconfig:"ADMASTER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ADMASTER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ADMASTER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ADMASTER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ADMASTER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ADMASTER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ADMASTER_REDIS_ADDR"`
	Password     string        `envconfig:"ADMASTER_REDIS_PASSWORD"`
	DB           int           `envconfig:"ADMASTER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ADMASTER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ADMASTER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ADMASTER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ADMASTER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ADMASTER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// IdentityConfig describes the external identity provider that signs
// bearer tokens for this API.
type IdentityConfig struct {
	JWKSURL           string        `envconfig:"ADMASTER_IDP_JWKS_URL" required:"true"`
	Issuer            string        `envconfig:"ADMASTER_IDP_ISSUER" required:"true"`
	AuthorizedParties []string      `envconfig:"ADMASTER_IDP_AUTHORIZED_PARTIES"`
	FetchTimeout      time.Duration `envconfig:"ADMASTER_IDP_FETCH_TIMEOUT" default:"5s"`
	RefreshAttempts   uint64        `envconfig:"ADMASTER_IDP_REFRESH_ATTEMPTS" default:"3"`
	RefreshCooldown   time.Duration `envconfig:"ADMASTER_IDP_REFRESH_COOLDOWN" default:"30s"`
}

// WebhookConfig describes the identity provider's webhook signing scheme.
type WebhookConfig struct {
	SigningSecret string        `envconfig:"ADMASTER_WEBHOOK_SIGNING_SECRET" required:"true"`
	Tolerance     time.Duration `envconfig:"ADMASTER_WEBHOOK_TOLERANCE" default:"5m"`
	ReplayTTL     time.Duration `envconfig:"ADMASTER_WEBHOOK_REPLAY_TTL" default:"24h"`
}

// CampaignConfig carries campaign creation defaults.
type CampaignConfig struct {
	DefaultCurrency    string          `envconfig:"ADMASTER_CAMPAIGN_DEFAULT_CURRENCY" default:"INR"`
	DefaultDailyBudget decimal.Decimal `envconfig:"ADMASTER_CAMPAIGN_DEFAULT_DAILY_BUDGET" default:"0"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ADMASTER_CORS_ALLOWED_ORIGINS"`
}

type FlagsConfig struct {
	AutoMigrate bool `envconfig:"ADMASTER_AUTO_MIGRATE" default:"false"`
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
