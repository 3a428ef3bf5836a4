package medications

import (
	"context"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/fhir_dto"
	"smartrx-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

// ResolvePatientName reads the patient and formats its first name entry.
// Any failure yields "Unknown".
func (uc *medicationUsecase) ResolvePatientName(ctx context.Context, fhirClient contracts.FhirClient, patientID string) string {
	requestID := utils.GetRequestIDFromContext(ctx)

	patient := new(fhir_dto.Patient)
	err := fhirClient.Read(ctx, constvars.ResourcePatient, patientID, patient)
	if err != nil {
		uc.Log.Warn("medicationUsecase.ResolvePatientName error reading patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return constvars.UnknownPatientName
	}

	for _, name := range patient.Name {
		if formatted := formatHumanName(name); formatted != "" {
			return formatted
		}
	}
	return constvars.UnknownPatientName
}

func formatHumanName(name fhir_dto.HumanName) string {
	if text := strings.TrimSpace(name.Text); text != "" {
		return text
	}

	parts := make([]string, 0, len(name.Prefix)+len(name.Given)+len(name.Suffix)+1)
	parts = append(parts, name.Prefix...)
	parts = append(parts, name.Given...)
	parts = append(parts, name.Family)
	parts = append(parts, name.Suffix...)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
