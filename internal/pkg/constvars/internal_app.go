package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_ID_KEY           ContextKey = "session_id"
)

const (
	REQUEST_ID_PREFIX = "SMARTRX_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	SessionDriverRedis   = "redis"
	SessionDriverMongoDB = "mongodb"
	SessionDriverMemory  = "memory"
)

const (
	SessionKeyAuthorizationState = "state"
	SessionRedisKeyFormat        = "smart:session:%s"
	SessionMongoCollection       = "browser_sessions"
)

const (
	RouteLaunch = "/launch"
	RouteIndex  = "/"
	RouteHealth = "/healthz"

	// RouteHTMLSuffix registers the launch and callback routes a second time
	// with ".html", the paths registered with many EHR sandboxes.
	RouteHTMLSuffix = ".html"
)

const (
	ResponseHealthy = "service is healthy"
	HealthStatusUp  = "up"
)
