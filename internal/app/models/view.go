package models

// MedicationView is what the main page renders.
type MedicationView struct {
	Ready              bool
	PatientName        string
	Medications        []string
	NoPrescriptions    bool
	PrescriptionsError string
}
