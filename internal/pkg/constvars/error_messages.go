package constvars

// client messages
const (
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientCannotProcessRequest          = "cannot process your request"
	ErrClientLaunchSequenceAborted         = "launch sequence aborted, the app must be opened from an EHR or with a FHIR server address"
	ErrClientAuthorizationRejected         = "the authorization request was rejected, please launch the app again"
	ErrClientAuthorizationFailed           = "could not complete authorization with the EHR, please launch the app again"
	ErrClientEHRUnavailable                = "the EHR server could not be reached"
	ErrClientSessionInvalid                = "your session is invalid, please launch the app again"
)

// developer messages
const (
	ErrDevCannotMarshalJSON      = "cannot convert struct or other data types to JSON"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevBuildRequest           = "failed to build request"

	ErrDevLaunchMissingParameters = "launch request carries neither iss nor fhirServiceUrl"
	ErrDevLaunchInvalidConfig     = "launch configuration is invalid"
	ErrDevLaunchWrongAuthType     = "authorize url requested for auth type %s"

	ErrDevCallbackAuthorizationError = "authorization server returned error %q"
	ErrDevCallbackMissingState       = "callback carries no state parameter"
	ErrDevCallbackStateMismatch      = "state did not match"
	ErrDevCallbackNoPendingLogin     = "no authorization is pending for this session"
	ErrDevCallbackMissingCode        = "callback carries no code parameter"
	ErrDevCallbackParseURL           = "cannot parse callback url"

	ErrDevTokenExchangeFailed  = "token exchange with %s failed"
	ErrDevTokenExchangeTimeout = "token exchange with %s timed out"

	ErrDevSmartDiscoveryFailed      = "cannot discover SMART endpoints for %s"
	ErrDevSmartDiscoveryNoEndpoints = "server %s advertises no authorize/token endpoints"

	ErrDevFHIRGetResource    = "failed to get FHIR %s from %s"
	ErrDevFHIRDecodeResource = "failed to decode FHIR %s response"
	ErrDevFHIRTimeout        = "request for FHIR %s timed out"
	ErrDevFHIRRateLimited    = "outbound rate limiter refused request to %s"

	ErrDevSessionMissing       = "no browser session in request context"
	ErrDevSessionTokenInvalid  = "invalid session token"
	ErrDevSessionSigningMethod = "unexpected signing method"
	ErrDevSessionGenerateToken = "failed to generate session token"
	ErrDevSessionDecodeState   = "cannot decode authorization state"

	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisHashSet    = "failed to HSET data into redis"
	ErrDevRedisHashGet    = "failed to HGET data from redis"
	ErrDevRedisExpire     = "failed to EXPIRE key in redis"

	ErrDevDBFailedToFindDocument   = "failed when do find document on database"
	ErrDevDBFailedToUpsertDocument = "failed to upsert document into database"
	ErrDevDBFailedToDeleteDocument = "failed when do delete document on database"

	ErrDevRenderTemplate = "failed to render template %s"
)

// validation messages
const (
	ErrMsgRequired   = "%s is required"
	ErrMsgRequiredIf = "%s is required for this launch type"
	ErrMsgOneOf      = "%s must be one of %s"
	ErrMsgURL        = "%s must be a valid url"
	ErrMsgDefault    = "%s is invalid"
)
