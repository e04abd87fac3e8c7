package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Idempotency  IdempotencyConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"WARESCAN_APP_ENV" required:"true"`
	Port         string `envconfig:"WARESCAN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WARESCAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WARESCAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WARESCAN_DB_DSN"`
	Driver string `envconfig:"WARESCAN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WARESCAN_DB_HOST"`
	LegacyPort     int    `envconfig:"WARESCAN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WARESCAN_DB_USER"`
	LegacyPassword string `envconfig:"WARESCAN_DB_PASSWORD"`
	LegacyName     string `envconfig:"WARESCAN_DB_NAME"`
	LegacySSLMode  string `envconfig:"WARESCAN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WARESCAN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WARESCAN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WARESCAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WARESCAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the embedded SQLite driver was selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"WARESCAN_REDIS_URL"`
	Address      string        `envconfig:"WARESCAN_REDIS_ADDR"`
	Password     string        `envconfig:"WARESCAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"WARESCAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WARESCAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WARESCAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WARESCAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WARESCAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WARESCAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The ledger
// runs without Redis; only idempotent replay of adjustments needs it.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"WARESCAN_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"WARESCAN_AUTO_MIGRATE" default:"false"`
	SeedDemoData bool `envconfig:"WARESCAN_SEED_DEMO_DATA" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.IsSQLite() {
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
