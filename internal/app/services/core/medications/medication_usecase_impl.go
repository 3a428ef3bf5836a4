package medications

import (
	"context"
	"smartrx-service/internal/app/config"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type medicationUsecase struct {
	SmartClientFactory contracts.SmartClientFactory
	FhirClientFactory  contracts.FhirClientFactory
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

func NewMedicationUsecase(
	smartClientFactory contracts.SmartClientFactory,
	fhirClientFactory contracts.FhirClientFactory,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.MedicationUsecase {
	return &medicationUsecase{
		SmartClientFactory: smartClientFactory,
		FhirClientFactory:  fhirClientFactory,
		InternalConfig:     internalConfig,
		Log:                logger,
	}
}

// BuildMedicationView returns a view with Ready=false when the browser has no
// usable session. Once ready, FHIR failures never fail the view; they show up
// as markers in the affected section.
func (uc *medicationUsecase) BuildMedicationView(ctx context.Context) (*models.MedicationView, error) {
	requestID := utils.GetRequestIDFromContext(ctx)
	uc.Log.Info("medicationUsecase.BuildMedicationView called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SmartClientFactory.NewClientSession(ctx, uc.defaultLaunchConfig())
	if err != nil {
		uc.Log.Error("medicationUsecase.BuildMedicationView error restoring session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if !session.Ready() {
		uc.Log.Info("medicationUsecase.BuildMedicationView session not ready",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return &models.MedicationView{}, nil
	}

	fhirClient := uc.FhirClientFactory.NewFhirClient(session.ServerBase(), session.HTTPClient(ctx))
	patientID := session.PatientID()

	view := &models.MedicationView{
		Ready:       true,
		PatientName: uc.ResolvePatientName(ctx, fhirClient, patientID),
	}

	prescriptions, err := uc.ListPrescriptions(ctx, fhirClient, patientID)
	if err != nil {
		uc.Log.Error("medicationUsecase.BuildMedicationView error listing prescriptions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		view.PrescriptionsError = constvars.ViewPrescriptionsErrorMessage
		return view, nil
	}

	if prescriptions.IsEmpty() {
		view.NoPrescriptions = true
		return view, nil
	}

	view.Medications = make([]string, 0, len(prescriptions.Entries))
	for _, entry := range prescriptions.Entries {
		view.Medications = append(view.Medications, uc.ResolveMedicationName(ctx, fhirClient, entry))
	}

	uc.Log.Info("medicationUsecase.BuildMedicationView succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTotalEntriesKey, len(view.Medications)),
	)
	return view, nil
}

// defaultLaunchConfig lets the main view work without a launch when a default
// server and patient are configured. It only applies when nothing is persisted.
func (uc *medicationUsecase) defaultLaunchConfig() *models.LaunchConfig {
	fhir := uc.InternalConfig.FHIR
	if fhir.DefaultAPIBase == "" || fhir.DefaultPatientID == "" {
		return nil
	}
	return &models.LaunchConfig{
		AppID:     uc.InternalConfig.Smart.AppID,
		APIBase:   fhir.DefaultAPIBase,
		AuthType:  constvars.SmartAuthTypeNone,
		PatientID: models.StringPtr(fhir.DefaultPatientID),
	}
}
