package fhir_dto

type CapabilityStatement struct {
	ResourceType string                    `json:"resourceType"`
	FhirVersion  string                    `json:"fhirVersion,omitempty"`
	Rest         []CapabilityStatementRest `json:"rest,omitempty"`
}

type CapabilityStatementRest struct {
	Mode     string                       `json:"mode,omitempty"`
	Security *CapabilityStatementSecurity `json:"security,omitempty"`
}

type CapabilityStatementSecurity struct {
	Extension []Extension `json:"extension,omitempty"`
}

// SmartConfiguration is the document served at .well-known/smart-configuration.
type SmartConfiguration struct {
	Issuer                        string   `json:"issuer,omitempty"`
	AuthorizationEndpoint         string   `json:"authorization_endpoint"`
	TokenEndpoint                 string   `json:"token_endpoint"`
	RevocationEndpoint            string   `json:"revocation_endpoint,omitempty"`
	ScopesSupported               []string `json:"scopes_supported,omitempty"`
	ResponseTypesSupported        []string `json:"response_types_supported,omitempty"`
	Capabilities                  []string `json:"capabilities,omitempty"`
	CodeChallengeMethodsSupported []string `json:"code_challenge_methods_supported,omitempty"`
}
