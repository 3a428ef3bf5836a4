package constvars

const (
	ViewTemplateMedications = "medications.html"

	ViewTitleMedications          = "Medications"
	ViewNoPrescriptionsMessage    = "No prescriptions found for this patient."
	ViewPrescriptionsErrorMessage = "Unable to load prescriptions for this patient."
)
