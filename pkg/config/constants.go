package config

// EnvPrefix namespaces every environment variable the app reads.
const EnvPrefix = "BRIGHTCART"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared with tests and tooling.
const (
	EnvAppEnv     = "BRIGHTCART_APP_ENV"
	EnvPort       = "BRIGHTCART_APP_PORT"
	EnvDBDSN      = "BRIGHTCART_DB_DSN"
	EnvDBHost     = "BRIGHTCART_DB_HOST"
	EnvDBUser     = "BRIGHTCART_DB_USER"
	EnvDBName     = "BRIGHTCART_DB_NAME"
	EnvRedisURL   = "BRIGHTCART_REDIS_URL"
	EnvJWTSecret  = "BRIGHTCART_JWT_SECRET"
	EnvJWTIssuer  = "BRIGHTCART_JWT_ISSUER"
	EnvJWTExpMins = "BRIGHTCART_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
