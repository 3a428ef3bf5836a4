package medications

import (
	"context"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/fhir_dto"
	"smartrx-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// ResolveMedicationName never fails; unresolvable entries get the
// "Error: medication not found" marker.
func (uc *medicationUsecase) ResolveMedicationName(ctx context.Context, fhirClient contracts.FhirClient, entry models.PrescriptionEntry) string {
	switch medication := entry.Medication.(type) {
	case models.InlineConcept:
		return conceptName(medication)
	case models.MedicationReference:
		if medication.Contained != nil {
			return conceptName(*medication.Contained)
		}
		resource := new(fhir_dto.Medication)
		err := fhirClient.Read(ctx, constvars.ResourceMedication, medication.TargetID, resource)
		if err != nil {
			uc.Log.Warn("medicationUsecase.ResolveMedicationName error reading medication",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestIDFromContext(ctx)),
				zap.String(constvars.LoggingResourceIDKey, medication.TargetID),
				zap.Error(err),
			)
			return constvars.MedicationNotFoundName
		}
		return conceptName(inlineConcept(resource.Code))
	default:
		return constvars.MedicationNotFoundName
	}
}

// conceptName prefers an RxNorm display, then the concept text.
func conceptName(concept models.InlineConcept) string {
	for _, coding := range concept.Codings {
		if coding.System == constvars.RxNormSystemURI && coding.Display != "" {
			return coding.Display
		}
	}
	if concept.Text != "" {
		return concept.Text
	}
	return constvars.UnnamedMedicationName
}
