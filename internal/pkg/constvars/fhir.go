package constvars

const (
	ResourcePatient           = "Patient"
	ResourceMedication        = "Medication"
	ResourceMedicationRequest = "MedicationRequest"
	ResourceBundle            = "Bundle"
	ResourceOperationOutcome  = "OperationOutcome"
	ResourceCapabilityStmt    = "CapabilityStatement"
)

const (
	FhirSearchParamPatient = "patient"
	FhirSearchParamCount   = "_count"
	FhirBundleLinkNext     = "next"
	FhirMetadataPath       = "metadata"
)

const (
	RxNormSystemURI = "http://www.nlm.nih.gov/research/umls/rxnorm"

	UnnamedMedicationName  = "Unnamed Medication(TM)"
	MedicationNotFoundName = "Error: medication not found"
	UnknownPatientName     = "Unknown"
)
