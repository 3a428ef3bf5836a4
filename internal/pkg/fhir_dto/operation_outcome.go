package fhir_dto

type OperationOutcome struct {
	ResourceType string  `json:"resourceType"`
	Issue        []Issue `json:"issue"`
}

type Issue struct {
	Severity    string `json:"severity"`
	Code        string `json:"code,omitempty"`
	Diagnostics string `json:"diagnostics"`
}

// FirstDiagnostics returns the diagnostics of the first issue, if any.
func (o *OperationOutcome) FirstDiagnostics() string {
	if len(o.Issue) == 0 {
		return ""
	}
	return o.Issue[0].Diagnostics
}
