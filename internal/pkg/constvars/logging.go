package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingSessionIDKey  = "session_id"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
	LoggingErrorKey      = "error"

	LoggingAuthTypeKey     = "auth_type"
	LoggingServerBaseKey   = "server_base"
	LoggingPatientIDKey    = "patient_id"
	LoggingResourceTypeKey = "resource_type"
	LoggingResourceIDKey   = "resource_id"
	LoggingURLKey          = "url"
	LoggingPageKey         = "page"
	LoggingTotalEntriesKey = "total_entries"
	LoggingMedicationKey   = "medication"
)
