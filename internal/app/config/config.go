package config

import (
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "smartrx"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", "8000"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			BaseUrl:                    utils.GetEnvString("APP_BASE_URL", "http://localhost:8000"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", ""),
			AllowedOrigins:             utils.GetEnvCSV("APP_ALLOWED_ORIGINS", "*"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 30),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		Smart: AppSmart{
			AppID:                utils.GetEnvString("SMART_APP_ID", "my_web_app"),
			Scope:                utils.GetEnvString("SMART_SCOPE", constvars.SmartDefaultScope),
			CallbackPath:         utils.GetEnvString("SMART_CALLBACK_PATH", constvars.SmartDefaultCallbackPath),
			HTTPTimeoutInSeconds: utils.GetEnvInt("SMART_HTTP_TIMEOUT_IN_SECONDS", 10),
		},
		FHIR: AppFHIR{
			DefaultAPIBase:    utils.GetEnvString("FHIR_DEFAULT_API_BASE", "https://r4.smarthealthit.org"),
			DefaultPatientID:  utils.GetEnvString("FHIR_DEFAULT_PATIENT_ID", ""),
			MaxSearchPages:    utils.GetEnvInt("FHIR_MAX_SEARCH_PAGES", 10),
			RequestsPerSecond: utils.GetEnvInt("FHIR_REQUESTS_PER_SECOND", 10),
			RequestBurst:      utils.GetEnvInt("FHIR_REQUEST_BURST", 20),
		},
		Session: AppSession{
			Driver:               utils.GetEnvString("SESSION_DRIVER", constvars.SessionDriverRedis),
			CookieName:           utils.GetEnvString("SESSION_COOKIE_NAME", "smartrx_session"),
			CookieSecure:         utils.GetEnvBool("SESSION_COOKIE_SECURE", false),
			ExpiredTimeInMinutes: utils.GetEnvInt("SESSION_EXPIRED_TIME_IN_MINUTES", 60),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", "change-me"),
		},
	}
}
