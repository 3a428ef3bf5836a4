package launch

import (
	"context"
	"fmt"
	"smartrx-service/internal/app/config"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

type launchUsecase struct {
	StateStore         contracts.AuthorizationStateStore
	SmartClientFactory contracts.SmartClientFactory
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

func NewLaunchUsecase(
	stateStore contracts.AuthorizationStateStore,
	smartClientFactory contracts.SmartClientFactory,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.LaunchUsecase {
	return &launchUsecase{
		StateStore:         stateStore,
		SmartClientFactory: smartClientFactory,
		InternalConfig:     internalConfig,
		Log:                logger,
	}
}

// ClassifyLaunch decides between an EHR launch (iss) and a standalone launch
// (fhirServiceUrl) and returns where the browser goes next. Any earlier
// session state of this browser is discarded first.
func (uc *launchUsecase) ClassifyLaunch(ctx context.Context, request *models.LaunchRequest) (*models.LaunchResult, error) {
	requestID := utils.GetRequestIDFromContext(ctx)
	uc.Log.Info("launchUsecase.ClassifyLaunch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.StateStore.Clear(ctx)
	if err != nil {
		uc.Log.Error("launchUsecase.ClassifyLaunch error clearing session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	cfg, err := uc.buildLaunchConfig(request)
	if err != nil {
		uc.Log.Error("launchUsecase.ClassifyLaunch invalid launch request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	session, err := uc.SmartClientFactory.NewClientSession(ctx, cfg)
	if err != nil {
		return nil, err
	}

	authorizeURL, err := session.AuthorizeURL(ctx)
	if err != nil {
		uc.Log.Error("launchUsecase.ClassifyLaunch error building authorize URL",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &models.LaunchResult{
		RedirectURL: authorizeURL,
		AuthType:    cfg.AuthType,
	}
	if cfg.AuthType == constvars.SmartAuthTypeNone {
		result.RedirectURL = indexURL(request.AppBaseURL)
	}

	uc.Log.Info("launchUsecase.ClassifyLaunch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAuthTypeKey, cfg.AuthType),
		zap.String(constvars.LoggingServerBaseKey, cfg.APIBase),
	)
	return result, nil
}

func (uc *launchUsecase) CompleteAuthorization(ctx context.Context, callbackURL string) error {
	requestID := utils.GetRequestIDFromContext(ctx)
	uc.Log.Info("launchUsecase.CompleteAuthorization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SmartClientFactory.NewClientSession(ctx, nil)
	if err != nil {
		return err
	}

	err = session.HandleCallback(ctx, callbackURL)
	if err != nil {
		uc.Log.Error("launchUsecase.CompleteAuthorization callback rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("launchUsecase.CompleteAuthorization succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("ready", session.Ready()),
	)
	return nil
}

func (uc *launchUsecase) buildLaunchConfig(request *models.LaunchRequest) (*models.LaunchConfig, error) {
	query := request.Query
	smart := uc.InternalConfig.Smart

	var cfg *models.LaunchConfig
	switch {
	case query.Has(constvars.SmartLaunchParamIss):
		cfg = &models.LaunchConfig{
			AppID:       smart.AppID,
			APIBase:     query.Get(constvars.SmartLaunchParamIss),
			AuthType:    constvars.SmartAuthTypeOAuth2,
			LaunchToken: models.StringPtr(query.Get(constvars.SmartLaunchParamLaunch)),
			RedirectURI: strings.TrimRight(request.AppBaseURL, "/") + smart.CallbackPath,
			Scope:       smart.Scope,
		}
	case query.Has(constvars.SmartLaunchParamFhirServiceUrl):
		cfg = &models.LaunchConfig{
			AppID:     smart.AppID,
			APIBase:   query.Get(constvars.SmartLaunchParamFhirServiceUrl),
			AuthType:  constvars.SmartAuthTypeNone,
			PatientID: models.StringPtr(query.Get(constvars.SmartLaunchParamPatientID)),
			Scope:     smart.Scope,
		}
	default:
		return nil, exceptions.ErrLaunchSequence(nil, constvars.ErrDevLaunchMissingParameters)
	}

	err := utils.ValidateStruct(cfg)
	if err != nil {
		return nil, exceptions.ErrLaunchSequence(err, fmt.Sprintf("%s: %s", constvars.ErrDevLaunchInvalidConfig, exceptions.FormatFirstValidationError(err)))
	}
	return cfg, nil
}

func indexURL(appBaseURL string) string {
	return strings.TrimRight(appBaseURL, "/") + constvars.RouteIndex
}
