package fhir_dto

import "encoding/json"

type Medication struct {
	ID           string           `json:"id,omitempty"`
	ResourceType string           `json:"resourceType,omitempty"`
	Meta         *Meta            `json:"meta,omitempty"`
	Code         *CodeableConcept `json:"code,omitempty"`
	Status       string           `json:"status,omitempty"`
}

// MedicationRequest covers both the R4 choice fields (medicationCodeableConcept,
// medicationReference) and the R5 CodeableReference field (medication).
type MedicationRequest struct {
	ID                        string             `json:"id,omitempty"`
	ResourceType              string             `json:"resourceType,omitempty"`
	Meta                      *Meta              `json:"meta,omitempty"`
	Status                    string             `json:"status,omitempty"`
	Intent                    string             `json:"intent,omitempty"`
	Subject                   *Reference         `json:"subject,omitempty"`
	AuthoredOn                string             `json:"authoredOn,omitempty"`
	MedicationCodeableConcept *CodeableConcept   `json:"medicationCodeableConcept,omitempty"`
	MedicationReference       *Reference         `json:"medicationReference,omitempty"`
	Medication                *CodeableReference `json:"medication,omitempty"`
	Contained                 []json.RawMessage  `json:"contained,omitempty"`
}
