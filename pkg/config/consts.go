package config

// EnvPrefix is empty because every field carries its fully qualified
// ADMASTER_* name in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared between Load, tests, and tooling.
const (
	EnvAppEnv   = "ADMASTER_APP_ENV"
	EnvPort     = "ADMASTER_APP_PORT"
	EnvLogLevel = "ADMASTER_LOG_LEVEL"

	EnvDBDSN  = "ADMASTER_DB_DSN"
	EnvDBHost = "ADMASTER_DB_HOST"
	EnvDBUser = "ADMASTER_DB_USER"
	EnvDBName = "ADMASTER_DB_NAME"

	EnvRedisURL = "ADMASTER_REDIS_URL"

	EnvIDPJWKSURL = "ADMASTER_IDP_JWKS_URL"
	EnvIDPIssuer  = "ADMASTER_IDP_ISSUER"

	EnvWebhookSigningSecret = "ADMASTER_WEBHOOK_SIGNING_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
