package controllers

import (
	"context"
	"errors"
	"net/http"
	"smartrx-service/internal/app/config"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/dto/responses"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

type SmartAppController struct {
	Log               *zap.Logger
	LaunchUsecase     contracts.LaunchUsecase
	MedicationUsecase contracts.MedicationUsecase
	Renderer          contracts.Renderer
	InternalConfig    *config.InternalConfig
}

func NewSmartAppController(
	logger *zap.Logger,
	launchUsecase contracts.LaunchUsecase,
	medicationUsecase contracts.MedicationUsecase,
	renderer contracts.Renderer,
	internalConfig *config.InternalConfig,
) *SmartAppController {
	return &SmartAppController{
		Log:               logger,
		LaunchUsecase:     launchUsecase,
		MedicationUsecase: medicationUsecase,
		Renderer:          renderer,
		InternalConfig:    internalConfig,
	}
}

// Launch is the entry point opened by the EHR (iss, launch) or directly by a
// user (fhirServiceUrl, patientId).
func (ctrl *SmartAppController) Launch(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestIDFromContext(r.Context())
	ctrl.Log.Info("SmartAppController.Launch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
	)

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.LaunchUsecase.ClassifyLaunch(ctx, &models.LaunchRequest{
		Query:      r.URL.Query(),
		AppBaseURL: ctrl.InternalConfig.App.PublicURL(),
	})
	if err != nil {
		ctrl.Log.Error("SmartAppController.Launch error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		ctrl.buildErrorResponse(w, err)
		return
	}

	ctrl.Log.Info("SmartAppController.Launch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAuthTypeKey, result.AuthType),
	)
	w.Header().Set(constvars.HeaderCacheControl, "no-store")
	http.Redirect(w, r, result.RedirectURL, constvars.StatusFound)
}

// Authorize receives the redirect back from the authorization server.
func (ctrl *SmartAppController) Authorize(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestIDFromContext(r.Context())
	ctrl.Log.Info("SmartAppController.Authorize called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	callbackURL := strings.TrimRight(ctrl.InternalConfig.App.BaseUrl, "/") + r.URL.RequestURI()
	err := ctrl.LaunchUsecase.CompleteAuthorization(ctx, callbackURL)
	if err != nil {
		ctrl.Log.Error("SmartAppController.Authorize error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		ctrl.buildErrorResponse(w, err)
		return
	}

	ctrl.Log.Info("SmartAppController.Authorize succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	w.Header().Set(constvars.HeaderCacheControl, "no-store")
	http.Redirect(w, r, ctrl.InternalConfig.App.PublicURL()+constvars.RouteIndex, constvars.StatusFound)
}

// Index renders the patient's medication list, or an empty page when the
// browser has not completed a launch.
func (ctrl *SmartAppController) Index(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestIDFromContext(r.Context())
	ctrl.Log.Info("SmartAppController.Index called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	view, err := ctrl.MedicationUsecase.BuildMedicationView(ctx)
	if err != nil {
		ctrl.Log.Error("SmartAppController.Index error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		ctrl.buildErrorResponse(w, err)
		return
	}

	body, err := ctrl.Renderer.RenderMedicationView(view)
	if err != nil {
		ctrl.buildErrorResponse(w, err)
		return
	}

	ctrl.Log.Info("SmartAppController.Index succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("ready", view.Ready),
		zap.Int(constvars.LoggingTotalEntriesKey, len(view.Medications)),
	)
	utils.BuildHTMLResponse(w, constvars.StatusOK, body)
}

func (ctrl *SmartAppController) Health(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseHealthy, responses.Health{
		Status:         constvars.HealthStatusUp,
		Version:        ctrl.InternalConfig.App.Version,
		SessionBackend: ctrl.InternalConfig.Session.Driver,
	})
}

func (ctrl *SmartAppController) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), timeout)
}

func (ctrl *SmartAppController) buildErrorResponse(w http.ResponseWriter, err error) {
	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) && errors.Is(err, context.DeadlineExceeded) {
		err = exceptions.ErrServerDeadlineExceeded(err)
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
