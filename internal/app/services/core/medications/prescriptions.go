package medications

import (
	"context"
	"encoding/json"
	"net/url"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/fhir_dto"
	"smartrx-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

// ListPrescriptions searches the patient's MedicationRequests in server order.
// Each request is mapped to its medication form once; a request whose form
// cannot be determined is kept with a nil Medication.
func (uc *medicationUsecase) ListPrescriptions(ctx context.Context, fhirClient contracts.FhirClient, patientID string) (*models.PrescriptionList, error) {
	requestID := utils.GetRequestIDFromContext(ctx)
	uc.Log.Info("medicationUsecase.ListPrescriptions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	params := url.Values{}
	params.Set(constvars.FhirSearchParamPatient, patientID)

	resources, err := fhirClient.Search(ctx, constvars.ResourceMedicationRequest, params)
	if err != nil {
		return nil, err
	}

	list := &models.PrescriptionList{Entries: make([]models.PrescriptionEntry, 0, len(resources))}
	for _, raw := range resources {
		request := new(fhir_dto.MedicationRequest)
		err := json.Unmarshal(raw, request)
		if err != nil {
			uc.Log.Warn("medicationUsecase.ListPrescriptions cannot decode entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(exceptions.ErrDecodeFHIRResource(err, constvars.ResourceMedicationRequest)),
			)
			list.Entries = append(list.Entries, models.PrescriptionEntry{})
			continue
		}
		list.Entries = append(list.Entries, models.PrescriptionEntry{
			ID:         request.ID,
			Medication: medicationSource(request),
		})
	}

	uc.Log.Info("medicationUsecase.ListPrescriptions succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTotalEntriesKey, len(list.Entries)),
	)
	return list, nil
}

func medicationSource(request *fhir_dto.MedicationRequest) models.MedicationSource {
	switch {
	case request.MedicationCodeableConcept != nil:
		return inlineConcept(request.MedicationCodeableConcept)
	case request.MedicationReference != nil:
		return medicationReference(request, request.MedicationReference)
	case request.Medication != nil && request.Medication.Concept != nil:
		return inlineConcept(request.Medication.Concept)
	case request.Medication != nil && request.Medication.Reference != nil:
		return medicationReference(request, request.Medication.Reference)
	}
	return nil
}

func inlineConcept(concept *fhir_dto.CodeableConcept) models.InlineConcept {
	if concept == nil {
		return models.InlineConcept{}
	}
	inline := models.InlineConcept{
		Text:    concept.Text,
		Codings: make([]models.MedicationCoding, 0, len(concept.Coding)),
	}
	for _, coding := range concept.Coding {
		inline.Codings = append(inline.Codings, models.MedicationCoding{
			System:  coding.System,
			Code:    coding.Code,
			Display: coding.Display,
		})
	}
	return inline
}

// medicationReference returns nil when the reference cannot point at a
// Medication, including local references with no matching contained resource.
func medicationReference(request *fhir_dto.MedicationRequest, ref *fhir_dto.Reference) models.MedicationSource {
	target := strings.TrimSpace(ref.Reference)
	if target == "" {
		return nil
	}

	if localID, ok := strings.CutPrefix(target, "#"); ok {
		for _, raw := range request.Contained {
			contained := new(fhir_dto.Medication)
			if json.Unmarshal(raw, contained) != nil {
				continue
			}
			if contained.ResourceType == constvars.ResourceMedication && contained.ID == localID {
				concept := inlineConcept(contained.Code)
				return models.MedicationReference{TargetID: localID, Contained: &concept}
			}
		}
		return nil
	}

	targetID := referenceTargetID(target)
	if targetID == "" {
		return nil
	}
	return models.MedicationReference{TargetID: targetID}
}

// referenceTargetID extracts the Medication id from relative ("Medication/1"),
// versioned ("Medication/1/_history/2") and absolute references.
func referenceTargetID(reference string) string {
	if parsed, err := url.Parse(reference); err == nil && parsed.IsAbs() {
		reference = parsed.Path
	}
	segments := strings.Split(strings.Trim(reference, "/"), "/")
	for i := len(segments) - 2; i >= 0; i-- {
		if segments[i] == constvars.ResourceMedication {
			return segments[i+1]
		}
	}
	return ""
}
