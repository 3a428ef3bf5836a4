package models

// MedicationSource is either an InlineConcept or a MedicationReference.
type MedicationSource interface {
	isMedicationSource()
}

type MedicationCoding struct {
	System  string
	Code    string
	Display string
}

type InlineConcept struct {
	Text    string
	Codings []MedicationCoding
}

// MedicationReference points at a Medication resource. Contained is set when the
// reference targets a resource contained in the prescription itself.
type MedicationReference struct {
	TargetID  string
	Contained *InlineConcept
}

func (InlineConcept) isMedicationSource()       {}
func (MedicationReference) isMedicationSource() {}

type PrescriptionEntry struct {
	ID         string
	Medication MedicationSource
}

type PrescriptionList struct {
	Entries []PrescriptionEntry
}

func (l *PrescriptionList) IsEmpty() bool {
	return l == nil || len(l.Entries) == 0
}
