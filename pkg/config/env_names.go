package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for fields without a tag.
const EnvPrefix = "GIFTNEST"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "GIFTNEST_APP_ENV"
	EnvPort       = "GIFTNEST_APP_PORT"
	EnvDBDSN      = "GIFTNEST_DB_DSN"
	EnvDBHost     = "GIFTNEST_DB_HOST"
	EnvDBUser     = "GIFTNEST_DB_USER"
	EnvDBName     = "GIFTNEST_DB_NAME"
	EnvRedisURL   = "GIFTNEST_REDIS_URL"
	EnvJWTSecret  = "GIFTNEST_JWT_SECRET"
	EnvJWTIssuer  = "GIFTNEST_JWT_ISSUER"
	EnvJWTExpMins = "GIFTNEST_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
