package config

const (
	EnvPrefix = "WARESCAN"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	EnvAppEnv   = "WARESCAN_APP_ENV"
	EnvPort     = "WARESCAN_APP_PORT"
	EnvDBDSN    = "WARESCAN_DB_DSN"
	EnvDBHost   = "WARESCAN_DB_HOST"
	EnvDBUser   = "WARESCAN_DB_USER"
	EnvDBName   = "WARESCAN_DB_NAME"
	EnvRedisURL = "WARESCAN_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
