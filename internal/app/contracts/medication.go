package contracts

import (
	"context"
	"smartrx-service/internal/app/models"
)

type MedicationUsecase interface {
	BuildMedicationView(ctx context.Context) (*models.MedicationView, error)
	ListPrescriptions(ctx context.Context, fhirClient FhirClient, patientID string) (*models.PrescriptionList, error)
	ResolveMedicationName(ctx context.Context, fhirClient FhirClient, entry models.PrescriptionEntry) string
	ResolvePatientName(ctx context.Context, fhirClient FhirClient, patientID string) string
}

type Renderer interface {
	RenderMedicationView(view *models.MedicationView) ([]byte, error)
}
