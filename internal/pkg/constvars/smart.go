package constvars

const (
	SmartAuthTypeOAuth2 = "oauth2"
	SmartAuthTypeNone   = "none"
)

const (
	SmartLaunchParamIss            = "iss"
	SmartLaunchParamLaunch         = "launch"
	SmartLaunchParamFhirServiceUrl = "fhirServiceUrl"
	SmartLaunchParamPatientID      = "patientId"

	SmartAuthorizeParamAud    = "aud"
	SmartAuthorizeParamLaunch = "launch"

	SmartCallbackParamCode             = "code"
	SmartCallbackParamState            = "state"
	SmartCallbackParamError            = "error"
	SmartCallbackParamErrorDescription = "error_description"

	SmartTokenContextPatient   = "patient"
	SmartTokenContextEncounter = "encounter"
)

const (
	SmartWellKnownPath       = ".well-known/smart-configuration"
	SmartOAuthURIsExtension  = "http://fhir-registry.smarthealthit.org/StructureDefinition/oauth-uris"
	SmartOAuthURIsAuthorize  = "authorize"
	SmartOAuthURIsToken      = "token"
	SmartPKCEMethodS256      = "S256"
	SmartDefaultScope        = "launch patient/*.read openid profile"
	SmartDefaultCallbackPath = "/authorize"
)
